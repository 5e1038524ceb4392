package users

// RoleType represents a user role as issued by the camp API
type RoleType string

const (
	// RoleAdmin can provision and manage camps; not bound to any single camp
	RoleAdmin RoleType = "ADMIN"
	// RoleCampHead runs one camp: doctor roster, visitor roster, analytics
	RoleCampHead RoleType = "CAMP_HEAD"
	// RoleDoctor records consultations for visitors of one camp
	RoleDoctor RoleType = "DOCTOR"
)

// User is the authenticated identity returned by the camp API's auth endpoint.
// Tenant-scoped roles (CAMP_HEAD, DOCTOR) carry the camp they belong to;
// admins carry no camp binding.
type User struct {
	ID     string   `json:"id,omitempty"`
	Email  string   `json:"email,omitempty"`
	Name   string   `json:"name,omitempty"`
	Role   RoleType `json:"role,omitempty"`
	CampID string   `json:"campId,omitempty"`
}

// IsAdmin returns true if the user holds the system-wide admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCampStaff returns true for tenant-scoped roles
func (u *User) IsCampStaff() bool {
	return u.Role == RoleCampHead || u.Role == RoleDoctor
}

// NewDoctor is the payload for adding a doctor to a camp's roster,
// either individually or through CSV bulk-import.
type NewDoctor struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
