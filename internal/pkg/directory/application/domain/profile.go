package directory

import "strings"

// Role is the HR role attached to a profile at registration.
type Role string

const (
	RoleHRManager      Role = "HR Manager"
	RoleProjectManager Role = "Project Manager"
	RoleEmployee       Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleHRManager, RoleProjectManager, RoleEmployee:
		return true
	}
	return false
}

// Profile is a directory entry. It is owned by the account service and read-only here.
type Profile struct {
	ID        string  `db:"id" json:"id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Role      Role    `db:"role" json:"role"`
	Email     *string `db:"email" json:"email,omitempty"`
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Summary is the subset of a profile shown next to messages and notifications.
type Summary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

func (p Profile) Summary() Summary {
	return Summary{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Role: p.Role}
}

// Index maps profiles by id.
func Index(profiles []Profile) map[string]Profile {
	out := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out
}
