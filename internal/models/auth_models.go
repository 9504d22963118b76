package models

import "time"

// Roles understood by the authorization guard.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// IsValidRole reports whether role is one the guard knows about.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// User is an administrative account. The password hash is never serialized.
type User struct {
	ID           string     `json:"id" db:"id"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// SessionData is the JSON payload stored in the sessions table.
type SessionData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	IP     string `json:"ip,omitempty"`
	Agent  string `json:"user_agent,omitempty"`
}

// Session is a server-side authentication record keyed by an opaque id.
type Session struct {
	SID    string      `json:"sid" db:"sid"`
	Data   SessionData `json:"sess" db:"sess"`
	Expire time.Time   `json:"expire" db:"expire"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.Expire.After(now)
}
