package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

// Postgres unique_violation.
const pgUniqueViolation = "23505"

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.q.CreateUser(ctx, db.User{
		ID:           user.ID.UUID,
		CompanyID:    user.CompanyID.UUID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domerrors.ErrUserExists
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, companyID domain.CompanyID, userID domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, companyID.UUID, userID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, companyID domain.CompanyID, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, companyID.UUID, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByEmailAnyCompany(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmailAnyCompany(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) ListPage(ctx context.Context, companyID domain.CompanyID, offset, limit int, after int64) ([]*domain.User, error) {
	rows, err := r.q.ListUsersPage(ctx, companyID.UUID, offset, limit, after)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, dbUserToDomain(u))
	}
	return out, nil
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		CompanyID:    domain.NewCompanyID(u.CompanyID),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)
