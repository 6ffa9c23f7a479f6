package domain

import (
	"time"

	"github.com/google/uuid"
)

// PostID is a value object for post identity.
type PostID struct{ uuid.UUID }

// NewPostID creates a new PostID from uuid.
func NewPostID(id uuid.UUID) PostID { return PostID{UUID: id} }

// String returns the canonical string form.
func (p PostID) String() string { return p.UUID.String() }

// Post statuses mirror the public API contract.
const (
	PostStatusOpen        = "open"
	PostStatusUnderReview = "under review"
	PostStatusPlanned     = "planned"
	PostStatusInProgress  = "in progress"
	PostStatusComplete    = "complete"
	PostStatusClosed      = "closed"
)

// Post is a feedback item on a board. Seq is a monotonically increasing
// per-table identity; list endpoints sort on it and cursor pagination uses
// it as the exclusive watermark, so it must be unique.
type Post struct {
	ID           PostID
	Seq          int64
	BoardID      BoardID
	CompanyID    CompanyID
	AuthorID     UserID
	Title        string
	Details      string
	Status       string
	VoteCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
