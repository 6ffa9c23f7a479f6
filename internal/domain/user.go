package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a company-scoped user. A user with no email is a shadow user,
// created ad hoc for anonymous feedback; shadow users cannot log in.
// (company_id, email) is unique when email is present.
type User struct {
	ID           UserID
	CompanyID    CompanyID
	Name         string
	Email        string // empty for shadow users
	PasswordHash string // empty for shadow users
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsShadow reports whether the user is an email-less guest.
func (u *User) IsShadow() bool { return u.Email == "" }
