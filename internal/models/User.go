package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. Decision points switch exhaustively
// over these constants instead of branching on raw strings.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a client-supplied role string. Empty input defaults
// to employee, matching the registration flow.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if role == "" {
		return RoleEmployee, nil
	}
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role" gorm:"type:varchar(20);default:'employee'"`
	Active   bool   `json:"active" gorm:"default:true"`
}
