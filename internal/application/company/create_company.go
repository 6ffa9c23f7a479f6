package company

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

var subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// CreateCompanyInput is the company name and optional subdomain.
type CreateCompanyInput struct {
	Name           string
	Subdomain      string
	AllowedDomains []string
}

// CreateCompanyResult returns the created company and the plain API key
// (the only time it is visible).
type CreateCompanyResult struct {
	Company *domain.Company
	APIKey  string
}

// CreateCompany creates a tenant with a generated API key.
type CreateCompany struct {
	companies ports.CompanyRepository
	creds     *CredentialStore
}

// NewCreateCompany builds the use case.
func NewCreateCompany(companies ports.CompanyRepository, creds *CredentialStore) *CreateCompany {
	return &CreateCompany{companies: companies, creds: creds}
}

// Execute creates the company and returns it with the plain API key.
func (uc *CreateCompany) Execute(ctx context.Context, input CreateCompanyInput) (*CreateCompanyResult, error) {
	sub := strings.ToLower(strings.TrimSpace(input.Subdomain))
	if sub != "" {
		if !subdomainRegex.MatchString(sub) {
			return nil, domerrors.ErrSubdomainTaken
		}
		existing, err := uc.companies.GetBySubdomain(ctx, sub)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domerrors.ErrSubdomainTaken
		}
	}
	plainKey, hash, err := uc.creds.GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &domain.Company{
		ID:             domain.NewCompanyID(uuid.New()),
		Name:           strings.TrimSpace(input.Name),
		Subdomain:      sub,
		APIKeyHash:     hash,
		AllowedDomains: input.AllowedDomains,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return &CreateCompanyResult{Company: c, APIKey: plainKey}, nil
}
