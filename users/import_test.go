package users_test

import (
	"strings"
	"testing"

	"github.com/medcamp/portal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDoctorRoster(t *testing.T) {
	csv := "name,email,password\n" +
		"Asha Rao,asha@example.com,Summer2024x\n" +
		"Vikram Shah,vikram@example.com\n" +
		"\n" +
		"Mei Chen,mei@example.com,\n"

	doctors, err := users.ParseDoctorRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, doctors, 3)

	assert.Equal(t, "Asha Rao", doctors[0].Name)
	assert.Equal(t, "asha@example.com", doctors[0].Email)
	assert.Equal(t, "Summer2024x", doctors[0].Password)

	// Rows without a password get a generated temporary one
	for _, doctor := range doctors[1:] {
		require.NotEmpty(t, doctor.Password)
		require.NoError(t, users.ValidatePasswordStrength(doctor.Password))
	}
}

func TestParseDoctorRosterNoHeader(t *testing.T) {
	csv := "Asha Rao,asha@example.com,Summer2024x\n"

	doctors, err := users.ParseDoctorRoster(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Asha Rao", doctors[0].Name)
}

func TestParseDoctorRosterInvalidEmail(t *testing.T) {
	csv := "name,email\nAsha Rao,not-an-email\n"

	_, err := users.ParseDoctorRoster(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseDoctorRosterWeakPassword(t *testing.T) {
	csv := "Asha Rao,asha@example.com,short\n"

	_, err := users.ParseDoctorRoster(strings.NewReader(csv))
	require.Error(t, err)
}

func TestParseDoctorRosterEmpty(t *testing.T) {
	_, err := users.ParseDoctorRoster(strings.NewReader("name,email\n"))
	require.Error(t, err)
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		password, err := users.GenerateTempPassword()
		require.NoError(t, err)
		require.NoError(t, users.ValidatePasswordStrength(password))
		assert.False(t, seen[password], "generated passwords should not repeat")
		seen[password] = true
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, users.ValidatePasswordStrength("Abcdef12"))
	require.Error(t, users.ValidatePasswordStrength("abcdef12"))
	require.Error(t, users.ValidatePasswordStrength("ABCDEF12"))
	require.Error(t, users.ValidatePasswordStrength("Abcdefgh"))
	require.Error(t, users.ValidatePasswordStrength("Ab1"))
}
