package users

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseDoctorRoster reads a CSV doctor roster for bulk-import.
//
// Expected columns: name, email and optionally password. A header row is
// detected by an "email" cell and skipped. Rows without a password get a
// generated temporary one; rows that do carry a password must pass the
// strength check. Blank lines are ignored.
func ParseDoctorRoster(r io.Reader) ([]NewDoctor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // password column is optional per row
	reader.TrimLeadingSpace = true

	var doctors []NewDoctor
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseDoctorRoster] row %d", row)
		}

		if isBlankRow(record) {
			continue
		}
		if row == 1 && isHeaderRow(record) {
			continue
		}

		if len(record) < 2 {
			return nil, fmt.Errorf("[ParseDoctorRoster] row %d: expected name,email[,password], got %d column(s)", row, len(record))
		}

		doctor := NewDoctor{
			Name:  strings.TrimSpace(record[0]),
			Email: strings.TrimSpace(record[1]),
		}
		if doctor.Name == "" {
			return nil, fmt.Errorf("[ParseDoctorRoster] row %d: name is required", row)
		}
		if !strings.Contains(doctor.Email, "@") {
			return nil, fmt.Errorf("[ParseDoctorRoster] row %d: invalid email %q", row, doctor.Email)
		}

		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			doctor.Password = strings.TrimSpace(record[2])
			if err := ValidatePasswordStrength(doctor.Password); err != nil {
				return nil, errors.Wrapf(err, "[ParseDoctorRoster] row %d", row)
			}
		} else {
			password, err := GenerateTempPassword()
			if err != nil {
				return nil, errors.Wrapf(err, "[ParseDoctorRoster] row %d", row)
			}
			doctor.Password = password
		}

		doctors = append(doctors, doctor)
	}

	if len(doctors) == 0 {
		return nil, fmt.Errorf("[ParseDoctorRoster] no doctor rows found")
	}
	return doctors, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(record []string) bool {
	for _, cell := range record {
		if strings.EqualFold(strings.TrimSpace(cell), "email") {
			return true
		}
	}
	return false
}
