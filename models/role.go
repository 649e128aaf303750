package models

import "fmt"

// Role is the closed set of account roles. All role dispatch goes through
// this type; raw role strings never leave the parsing boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleClient Role = "client"
)

// ParseRole converts a stored or submitted role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAgent:
		return RoleAgent, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
