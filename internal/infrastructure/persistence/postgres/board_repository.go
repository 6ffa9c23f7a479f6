package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

type BoardRepository struct {
	q *db.Queries
}

func NewBoardRepository(q *db.Queries) *BoardRepository {
	return &BoardRepository{q: q}
}

func (r *BoardRepository) Create(ctx context.Context, board *domain.Board) error {
	seq, err := r.q.CreateBoard(ctx, db.Board{
		ID:        board.ID.UUID,
		CompanyID: board.CompanyID.UUID,
		Name:      board.Name,
		Slug:      board.Slug,
		PostCount: board.PostCount,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	})
	if err != nil {
		return err
	}
	board.Seq = seq
	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, companyID domain.CompanyID, boardID domain.BoardID) (*domain.Board, error) {
	b, err := r.q.GetBoardByID(ctx, companyID.UUID, boardID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbBoardToDomain(b), nil
}

func (r *BoardRepository) GetBySlug(ctx context.Context, companyID domain.CompanyID, slug string) (*domain.Board, error) {
	b, err := r.q.GetBoardBySlug(ctx, companyID.UUID, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbBoardToDomain(b), nil
}

func (r *BoardRepository) ListPage(ctx context.Context, companyID domain.CompanyID, offset, limit int, after int64) ([]*domain.Board, error) {
	rows, err := r.q.ListBoardsPage(ctx, companyID.UUID, offset, limit, after)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Board, 0, len(rows))
	for _, b := range rows {
		out = append(out, dbBoardToDomain(b))
	}
	return out, nil
}

func (r *BoardRepository) AdjustPostCount(ctx context.Context, companyID domain.CompanyID, boardID domain.BoardID, delta int) error {
	return r.q.AdjustBoardPostCount(ctx, companyID.UUID, boardID.UUID, delta)
}

func dbBoardToDomain(b db.Board) *domain.Board {
	return &domain.Board{
		ID:        domain.NewBoardID(b.ID),
		Seq:       b.Seq,
		CompanyID: domain.NewCompanyID(b.CompanyID),
		Name:      b.Name,
		Slug:      b.Slug,
		PostCount: b.PostCount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

var _ ports.BoardRepository = (*BoardRepository)(nil)
