package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

type CommentRepository struct {
	q *db.Queries
}

func NewCommentRepository(q *db.Queries) *CommentRepository {
	return &CommentRepository{q: q}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	seq, err := r.q.CreateComment(ctx, db.Comment{
		ID:        comment.ID.UUID,
		PostID:    comment.PostID.UUID,
		CompanyID: comment.CompanyID.UUID,
		AuthorID:  comment.AuthorID.UUID,
		Body:      comment.Body,
		Internal:  comment.Internal,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	})
	if err != nil {
		return err
	}
	comment.Seq = seq
	return nil
}

func (r *CommentRepository) ListPage(ctx context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Comment, error) {
	var pid *uuid.UUID
	if postID != nil {
		pid = &postID.UUID
	}
	rows, err := r.q.ListCommentsPage(ctx, companyID.UUID, pid, offset, limit, after)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Comment, 0, len(rows))
	for _, c := range rows {
		out = append(out, dbCommentToDomain(c))
	}
	return out, nil
}

func dbCommentToDomain(c db.Comment) *domain.Comment {
	return &domain.Comment{
		ID:        domain.NewCommentID(c.ID),
		Seq:       c.Seq,
		PostID:    domain.NewPostID(c.PostID),
		CompanyID: domain.NewCompanyID(c.CompanyID),
		AuthorID:  domain.NewUserID(c.AuthorID),
		Body:      c.Body,
		Internal:  c.Internal,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var _ ports.CommentRepository = (*CommentRepository)(nil)
