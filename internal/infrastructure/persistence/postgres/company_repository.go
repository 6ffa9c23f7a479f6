package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
)

type CompanyRepository struct {
	q *db.Queries
}

func NewCompanyRepository(q *db.Queries) *CompanyRepository {
	return &CompanyRepository{q: q}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.q.CreateCompany(ctx, db.Company{
		ID:             company.ID.UUID,
		Name:           company.Name,
		Subdomain:      company.Subdomain,
		ApiKeyHash:     company.APIKeyHash,
		AllowedDomains: company.AllowedDomains,
		CreatedAt:      company.CreatedAt,
		UpdatedAt:      company.UpdatedAt,
	})
}

func (r *CompanyRepository) GetByID(ctx context.Context, companyID domain.CompanyID) (*domain.Company, error) {
	c, err := r.q.GetCompanyByID(ctx, companyID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCompanyToDomain(c), nil
}

func (r *CompanyRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Company, error) {
	c, err := r.q.GetCompanyBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCompanyToDomain(c), nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.q.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Company, 0, len(rows))
	for _, c := range rows {
		out = append(out, dbCompanyToDomain(c))
	}
	return out, nil
}

func (r *CompanyRepository) First(ctx context.Context) (*domain.Company, error) {
	c, err := r.q.FirstCompany(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbCompanyToDomain(c), nil
}

func (r *CompanyRepository) UpdateAPIKeyHash(ctx context.Context, companyID domain.CompanyID, hash string) error {
	return r.q.UpdateCompanyAPIKeyHash(ctx, companyID.UUID, hash)
}

func dbCompanyToDomain(c db.Company) *domain.Company {
	return &domain.Company{
		ID:             domain.NewCompanyID(c.ID),
		Name:           c.Name,
		Subdomain:      c.Subdomain,
		APIKeyHash:     c.ApiKeyHash,
		AllowedDomains: c.AllowedDomains,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

var _ ports.CompanyRepository = (*CompanyRepository)(nil)
