package domain

import (
	"time"

	"github.com/google/uuid"
)

// BoardID is a value object for board identity.
type BoardID struct{ uuid.UUID }

// NewBoardID creates a new BoardID from uuid.
func NewBoardID(id uuid.UUID) BoardID { return BoardID{UUID: id} }

// String returns the canonical string form.
func (b BoardID) String() string { return b.UUID.String() }

// Board groups posts under a company (e.g. "Feature Requests", "Bugs").
type Board struct {
	ID        BoardID
	Seq       int64 // insertion-ordered, used as the cursor sort key
	CompanyID CompanyID
	Name      string
	Slug      string
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
