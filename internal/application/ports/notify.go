package ports

import "context"

// Notification event types.
const (
	EventPostCreated    = "post.created"
	EventCommentCreated = "comment.created"
	EventVoteCreated    = "vote.created"
	EventVoteDeleted    = "vote.deleted"
)

// Event is one outbound notification.
type Event struct {
	Type      string `json:"type"`
	CompanyID string `json:"company_id"`
	PostID    string `json:"post_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

// Notifier dispatches events to the outbound notification pipeline. Delivery
// is best-effort; callers ignore the error beyond logging.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
