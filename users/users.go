package users

import "time"

// Role is the platform role carried on the session user
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // Manages admins and events
	RoleAdmin      Role = "ADMIN"       // Manages events
	RoleClient     Role = "CLIENT"      // Books reservations and writes reviews
)

// Roles lists every known role
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleClient}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the identity returned by login and kept in the session
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// HasRole reports whether the user's role is one of roles. A missing role
// never matches.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil || u.Role == "" {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) IsSuperAdmin() bool {
	return u.HasRole(RoleSuperAdmin)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin, RoleSuperAdmin)
}

// Account is the full user record managed through the users endpoints
type Account struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Birthday  string    `json:"birthday"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the trimmed user embedded in other resources
type Summary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CreateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthday  string `json:"birthday"`
	Role      Role   `json:"role"`
}

type UpdateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type DeleteResponse struct {
	Message string  `json:"message"`
	User    Summary `json:"user"`
}
