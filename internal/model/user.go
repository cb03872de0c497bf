package model

import "time"

// Role is the closed set of privilege tiers.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Sanitized returns a copy of the user with the password hash cleared.
// Everything that crosses the response boundary goes through it.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}

// UserCreate is the registration payload.
type UserCreate struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role" validate:"omitempty,oneof=admin user moderator"`
	IsActive *bool  `json:"is_active"`
}

// UserUpdate carries the optional fields of a partial update. Nil
// fields are left untouched.
type UserUpdate struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=admin user moderator"`
	IsActive *bool   `json:"is_active"`
}
