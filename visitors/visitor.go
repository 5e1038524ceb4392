package visitors

import "time"

// Visitor is a member of the public registered at a camp. The registration
// code is printed on the visitor's slip (and encoded in its QR code); doctors
// key consultations off it.
type Visitor struct {
	ID           string    `json:"id,omitempty"`
	CampID       string    `json:"campId,omitempty"`
	Code         string    `json:"code,omitempty"`
	Name         string    `json:"name,omitempty"`
	Age          int       `json:"age,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Complaint    string    `json:"complaint,omitempty"`
	RegisteredAt time.Time `json:"registeredAt,omitempty"`
}

// Registration is the public self-registration form payload
type Registration struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone,omitempty"`
	Complaint string `json:"complaint,omitempty"`
}

// Consultation is one doctor/visitor encounter
type Consultation struct {
	ID           string    `json:"id,omitempty"`
	VisitorID    string    `json:"visitorId"`
	DoctorID     string    `json:"doctorId,omitempty"`
	Diagnosis    string    `json:"diagnosis"`
	Prescription string    `json:"prescription,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RecordedAt   time.Time `json:"recordedAt,omitempty"`
}
