package model

import "fmt"

// Role is the closed set of user roles. Keeping it a dedicated type forces
// every gate to go through ParseRole/Valid instead of raw string compares.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleVisitor Role = "visitor"
)

// ParseRole validates a raw role string from a form or backend payload.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleVisitor:
		return RoleVisitor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVisitor
}
