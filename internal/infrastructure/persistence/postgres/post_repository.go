package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

type PostRepository struct {
	q *db.Queries
}

func NewPostRepository(q *db.Queries) *PostRepository {
	return &PostRepository{q: q}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	seq, err := r.q.CreatePost(ctx, db.Post{
		ID:           post.ID.UUID,
		BoardID:      post.BoardID.UUID,
		CompanyID:    post.CompanyID.UUID,
		AuthorID:     post.AuthorID.UUID,
		Title:        post.Title,
		Details:      post.Details,
		Status:       post.Status,
		VoteCount:    post.VoteCount,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	})
	if err != nil {
		return err
	}
	post.Seq = seq
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, companyID domain.CompanyID, postID domain.PostID) (*domain.Post, error) {
	p, err := r.q.GetPostByID(ctx, companyID.UUID, postID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbPostToDomain(p), nil
}

func (r *PostRepository) GetByIDUnscoped(ctx context.Context, postID domain.PostID) (*domain.Post, error) {
	p, err := r.q.GetPostByIDUnscoped(ctx, postID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbPostToDomain(p), nil
}

func (r *PostRepository) ListPage(ctx context.Context, companyID domain.CompanyID, filter ports.PostFilter, offset, limit int, after int64) ([]*domain.Post, error) {
	var boardID *uuid.UUID
	if filter.BoardID != nil {
		boardID = &filter.BoardID.UUID
	}
	rows, err := r.q.ListPostsPage(ctx, companyID.UUID, boardID, filter.Status, offset, limit, after)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Post, 0, len(rows))
	for _, p := range rows {
		out = append(out, dbPostToDomain(p))
	}
	return out, nil
}

func (r *PostRepository) AdjustVoteCount(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error {
	return r.q.AdjustPostVoteCount(ctx, companyID.UUID, postID.UUID, delta)
}

func (r *PostRepository) AdjustCommentCount(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error {
	return r.q.AdjustPostCommentCount(ctx, companyID.UUID, postID.UUID, delta)
}

func dbPostToDomain(p db.Post) *domain.Post {
	return &domain.Post{
		ID:           domain.NewPostID(p.ID),
		Seq:          p.Seq,
		BoardID:      domain.NewBoardID(p.BoardID),
		CompanyID:    domain.NewCompanyID(p.CompanyID),
		AuthorID:     domain.NewUserID(p.AuthorID),
		Title:        p.Title,
		Details:      p.Details,
		Status:       p.Status,
		VoteCount:    p.VoteCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

var _ ports.PostRepository = (*PostRepository)(nil)
