package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
)

// Role decides what a user may manage.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents a user of the application in the domain.
type User struct {
	ID           string `json:"id"`    // Primary Key (UUID)
	Email        string `json:"email"` // unique, stored lower-case
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	AuditFields
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the required user fields.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return apperrors.NewValidationError("email", "is not a valid address")
	}
	if !u.Role.Valid() {
		return apperrors.NewValidationError("role", "must be admin or staff")
	}
	return nil
}

// SessionUser is the part of a user kept in the active session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the single active login. SessionID is carried in issued tokens so
// a token stops working once its session is cleared or replaced.
type Session struct {
	SessionUser
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
}

// ToSessionUser strips credentials from u.
func (u User) ToSessionUser() SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// UserUpdate lists the editable user fields. PasswordHash is set by the service after hashing.
type UserUpdate struct {
	Name         *string
	Role         *Role
	PasswordHash *string
}

// Apply merges the set fields into u.
func (up UserUpdate) Apply(u *User) {
	if up.Name != nil {
		u.Name = strings.TrimSpace(*up.Name)
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
	if up.PasswordHash != nil {
		u.PasswordHash = *up.PasswordHash
	}
}
