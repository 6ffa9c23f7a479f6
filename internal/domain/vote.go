package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteID is a value object for vote identity.
type VoteID struct{ uuid.UUID }

// NewVoteID creates a new VoteID from uuid.
func NewVoteID(id uuid.UUID) VoteID { return VoteID{UUID: id} }

// String returns the canonical string form.
func (v VoteID) String() string { return v.UUID.String() }

// Vote is one user's upvote on a post. (post_id, voter_id) is unique.
type Vote struct {
	ID        VoteID
	Seq       int64
	PostID    PostID
	CompanyID CompanyID
	VoterID   UserID
	CreatedAt time.Time
}
