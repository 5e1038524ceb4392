package camps

import "time"

// Camp represents one medical camp. The slug is issued by the server at
// camp-creation time and is treated as an opaque, case-sensitive identifier;
// it becomes the URL path segment that scopes all non-admin access.
type Camp struct {
	ID        string    `json:"id,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	Name      string    `json:"name,omitempty"`
	Location  string    `json:"location,omitempty"`
	StartDate time.Time `json:"startDate,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty"`
	Active    bool      `json:"active,omitempty"`
}

// Stats is the camp-head analytics summary for a single camp
type Stats struct {
	TotalVisitors      int `json:"totalVisitors"`
	TotalConsultations int `json:"totalConsultations"`
	ConsultationsToday int `json:"consultationsToday"`
	DoctorsOnRoster    int `json:"doctorsOnRoster"`
}
