package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type VoteInput struct {
	CompanyID domain.CompanyID
	PostID    domain.PostID
	Voter     AuthorRef
}

type VoteResult struct {
	Vote  *domain.Vote
	Voter *domain.User
}

// Votes covers vote create and delete; both adjust the post's vote counter
// atomically in storage.
type Votes struct {
	votes    ports.VoteRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewVotes(votes ports.VoteRepository, posts ports.PostRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *Votes {
	return &Votes{votes: votes, posts: posts, users: users, notifier: notifier, log: log}
}

// Create records a vote. A second vote by the same voter returns
// ErrDuplicateVote and leaves the counter untouched.
func (uc *Votes) Create(ctx context.Context, input VoteInput) (*VoteResult, error) {
	post, err := uc.posts.GetByID(ctx, input.CompanyID, input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domerrors.ErrNotFound
	}
	voter, err := resolveAuthor(ctx, uc.users, input.CompanyID, input.Voter)
	if err != nil {
		return nil, err
	}
	vote := &domain.Vote{
		ID:        domain.NewVoteID(uuid.New()),
		PostID:    post.ID,
		CompanyID: input.CompanyID,
		VoterID:   voter.ID,
		CreatedAt: time.Now(),
	}
	if err := uc.votes.Create(ctx, vote); err != nil {
		return nil, err
	}
	if err := uc.posts.AdjustVoteCount(ctx, input.CompanyID, post.ID, 1); err != nil {
		uc.log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("bump vote count failed")
	}
	if uc.notifier != nil {
		if err := uc.notifier.Publish(ctx, ports.Event{
			Type:      ports.EventVoteCreated,
			CompanyID: input.CompanyID.String(),
			PostID:    post.ID.String(),
			ActorID:   voter.ID.String(),
		}); err != nil {
			uc.log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("publish vote notification failed")
		}
	}
	return &VoteResult{Vote: vote, Voter: voter}, nil
}

// Delete removes a voter's vote and decrements the counter. The voter is
// looked up, never minted: an unknown voter has no vote to remove.
func (uc *Votes) Delete(ctx context.Context, input VoteInput) error {
	voter, err := lookupAuthor(ctx, uc.users, input.CompanyID, input.Voter)
	if err != nil {
		return err
	}
	if err := uc.votes.Delete(ctx, input.CompanyID, input.PostID, voter.ID); err != nil {
		return err
	}
	if err := uc.posts.AdjustVoteCount(ctx, input.CompanyID, input.PostID, -1); err != nil {
		uc.log.Warn().Err(err).Str("post_id", input.PostID.String()).Msg("drop vote count failed")
	}
	if uc.notifier != nil {
		if err := uc.notifier.Publish(ctx, ports.Event{
			Type:      ports.EventVoteDeleted,
			CompanyID: input.CompanyID.String(),
			PostID:    input.PostID.String(),
			ActorID:   voter.ID.String(),
		}); err != nil {
			uc.log.Warn().Err(err).Str("post_id", input.PostID.String()).Msg("publish vote notification failed")
		}
	}
	return nil
}
