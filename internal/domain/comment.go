package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentID is a value object for comment identity.
type CommentID struct{ uuid.UUID }

// NewCommentID creates a new CommentID from uuid.
func NewCommentID(id uuid.UUID) CommentID { return CommentID{UUID: id} }

// String returns the canonical string form.
func (c CommentID) String() string { return c.UUID.String() }

// Comment is a reply on a post. CompanyID is denormalized from the owning
// post so tenant scoping never needs a join.
type Comment struct {
	ID        CommentID
	Seq       int64
	PostID    PostID
	CompanyID CompanyID
	AuthorID  UserID
	Body      string
	Internal  bool // visible to company members only
	CreatedAt time.Time
	UpdatedAt time.Time
}
