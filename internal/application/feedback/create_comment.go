package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type CreateCommentInput struct {
	// CompanyID may be nil when no request signal resolved a tenant; the
	// comment's tenant is then derived from its owning post (the canonical
	// nearest-parent fallback, applied uniformly).
	CompanyID *domain.CompanyID
	PostID    domain.PostID
	Author    AuthorRef
	Body      string
	Internal  bool
}

type CreateCommentResult struct {
	Comment *domain.Comment
	Author  *domain.User
}

// CreateComment adds a comment to a post and bumps the post's comment
// counter.
type CreateComment struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCreateComment(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *CreateComment {
	return &CreateComment{comments: comments, posts: posts, users: users, notifier: notifier, log: log}
}

func (uc *CreateComment) Execute(ctx context.Context, input CreateCommentInput) (*CreateCommentResult, error) {
	var post *domain.Post
	var err error
	if input.CompanyID != nil {
		post, err = uc.posts.GetByID(ctx, *input.CompanyID, input.PostID)
	} else {
		post, err = uc.posts.GetByIDUnscoped(ctx, input.PostID)
	}
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domerrors.ErrNotFound
	}
	companyID := post.CompanyID

	author, err := resolveAuthor(ctx, uc.users, companyID, input.Author)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	comment := &domain.Comment{
		ID:        domain.NewCommentID(uuid.New()),
		PostID:    post.ID,
		CompanyID: companyID,
		AuthorID:  author.ID,
		Body:      strings.TrimSpace(input.Body),
		Internal:  input.Internal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := uc.posts.AdjustCommentCount(ctx, companyID, post.ID, 1); err != nil {
		uc.log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("bump comment count failed")
	}
	if uc.notifier != nil {
		if err := uc.notifier.Publish(ctx, ports.Event{
			Type:      ports.EventCommentCreated,
			CompanyID: companyID.String(),
			PostID:    post.ID.String(),
			ActorID:   author.ID.String(),
		}); err != nil {
			uc.log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("publish comment notification failed")
		}
	}
	return &CreateCommentResult{Comment: comment, Author: author}, nil
}
