package domain

import "time"

// Role values carried in JWT claims and user records. MASTER is the studio
// superuser; ADMIN and MASTER together form the staff set.
const (
	RoleUser   = "USER"
	RoleAdmin  = "ADMIN"
	RoleMaster = "MASTER"
)

// StaffRoles is the role set allowed on staff-only operations.
var StaffRoles = []string{RoleAdmin, RoleMaster}

// User status values.
const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	Name         string     `json:"name,omitempty" dynamodbav:"name"`
	Phone        *string    `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	Status       string     `json:"status" dynamodbav:"status"`
	AuthProvider string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub    string     `json:"-" dynamodbav:"google_sub"`
	LastLogin    *time.Time `json:"last_login,omitempty" dynamodbav:"last_login"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// IsStaff reports whether the role is ADMIN or MASTER.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleMaster
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleMaster
}

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" validate:"omitempty,oneof=USER ADMIN MASTER"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}
