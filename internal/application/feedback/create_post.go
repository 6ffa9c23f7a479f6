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

type CreatePostInput struct {
	CompanyID domain.CompanyID
	BoardID   domain.BoardID
	Author    AuthorRef
	Title     string
	Details   string
}

type CreatePostResult struct {
	Post   *domain.Post
	Author *domain.User
}

// CreatePost creates a post on a board, minting a shadow author when needed,
// and bumps the board's post counter.
type CreatePost struct {
	posts    ports.PostRepository
	boards   ports.BoardRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCreatePost(posts ports.PostRepository, boards ports.BoardRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *CreatePost {
	return &CreatePost{posts: posts, boards: boards, users: users, notifier: notifier, log: log}
}

func (uc *CreatePost) Execute(ctx context.Context, input CreatePostInput) (*CreatePostResult, error) {
	board, err := uc.boards.GetByID(ctx, input.CompanyID, input.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, domerrors.ErrNotFound
	}
	author, err := resolveAuthor(ctx, uc.users, input.CompanyID, input.Author)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	post := &domain.Post{
		ID:        domain.NewPostID(uuid.New()),
		BoardID:   board.ID,
		CompanyID: input.CompanyID,
		AuthorID:  author.ID,
		Title:     strings.TrimSpace(input.Title),
		Details:   strings.TrimSpace(input.Details),
		Status:    domain.PostStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := uc.boards.AdjustPostCount(ctx, input.CompanyID, board.ID, 1); err != nil {
		uc.log.Warn().Err(err).Str("board_id", board.ID.String()).Msg("bump board post count failed")
	}
	if uc.notifier != nil {
		if err := uc.notifier.Publish(ctx, ports.Event{
			Type:      ports.EventPostCreated,
			CompanyID: input.CompanyID.String(),
			PostID:    post.ID.String(),
			ActorID:   author.ID.String(),
		}); err != nil {
			uc.log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("publish post notification failed")
		}
	}
	return &CreatePostResult{Post: post, Author: author}, nil
}
