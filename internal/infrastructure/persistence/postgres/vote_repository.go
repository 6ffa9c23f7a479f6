package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

type VoteRepository struct {
	q *db.Queries
}

func NewVoteRepository(q *db.Queries) *VoteRepository {
	return &VoteRepository{q: q}
}

func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	seq, err := r.q.CreateVote(ctx, db.Vote{
		ID:        vote.ID.UUID,
		PostID:    vote.PostID.UUID,
		CompanyID: vote.CompanyID.UUID,
		VoterID:   vote.VoterID.UUID,
		CreatedAt: vote.CreatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domerrors.ErrDuplicateVote
		}
		return err
	}
	vote.Seq = seq
	return nil
}

func (r *VoteRepository) GetByPostAndVoter(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) (*domain.Vote, error) {
	v, err := r.q.GetVoteByPostAndVoter(ctx, companyID.UUID, postID.UUID, voterID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbVoteToDomain(v), nil
}

func (r *VoteRepository) Delete(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) error {
	affected, err := r.q.DeleteVote(ctx, companyID.UUID, postID.UUID, voterID.UUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

func (r *VoteRepository) ListPage(ctx context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Vote, error) {
	var pid *uuid.UUID
	if postID != nil {
		pid = &postID.UUID
	}
	rows, err := r.q.ListVotesPage(ctx, companyID.UUID, pid, offset, limit, after)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Vote, 0, len(rows))
	for _, v := range rows {
		out = append(out, dbVoteToDomain(v))
	}
	return out, nil
}

func dbVoteToDomain(v db.Vote) *domain.Vote {
	return &domain.Vote{
		ID:        domain.NewVoteID(v.ID),
		Seq:       v.Seq,
		PostID:    domain.NewPostID(v.PostID),
		CompanyID: domain.NewCompanyID(v.CompanyID),
		VoterID:   domain.NewUserID(v.VoterID),
		CreatedAt: v.CreatedAt,
	}
}

var _ ports.VoteRepository = (*VoteRepository)(nil)
