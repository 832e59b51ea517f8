package models

import "strings"

// Role of a platform user. The backend treats it as an opaque string enum,
// immutable for the lifetime of a session.
type Role string

const (
	RolePlatformAdmin  Role = "PLATFORM_ADMIN"
	RoleSupportStaff   Role = "SUPPORT_STAFF"
	RoleWarehouseAdmin Role = "WAREHOUSE_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleSupportStaff, RoleWarehouseAdmin:
		return true
	}
	return false
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// DisplayName returns the human readable name, falling back to the username
// when the profile has no names filled in.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
