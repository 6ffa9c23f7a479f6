package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyID is a value object for tenant identity.
type CompanyID struct{ uuid.UUID }

// NewCompanyID creates a new CompanyID from uuid.
func NewCompanyID(id uuid.UUID) CompanyID { return CompanyID{UUID: id} }

// String returns the canonical string form.
func (c CompanyID) String() string { return c.UUID.String() }

// Company is a single tenant. All boards, users, posts, comments and votes
// belong to exactly one company.
//
// APIKeyHash holds the Argon2id hash of the company's API key. Exactly one
// key is active at a time; regeneration replaces the hash in place and the
// previous plaintext key stops working immediately.
type Company struct {
	ID             CompanyID
	Name           string
	Subdomain      string // lowercase, globally unique; empty when not set
	APIKeyHash     string
	AllowedDomains []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
