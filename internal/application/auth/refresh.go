package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type RefreshInput struct {
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// Refresh exchanges a valid refresh token for a fresh pair. Verification is
// stateless; the user is re-read so a demoted admin loses the flag on
// rotation.
type Refresh struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer) *Refresh {
	return &Refresh{users: users, issuer: issuer}
}

func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.RefreshToken == "" {
		return nil, domerrors.ErrInvalidToken
	}
	claims, err := uc.issuer.VerifyToken(input.RefreshToken)
	if err != nil || claims.TokenType != ports.TokenTypeRefresh {
		return nil, domerrors.ErrInvalidToken
	}
	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	user, err := uc.users.GetByID(ctx, domain.NewCompanyID(companyID), domain.NewUserID(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidToken
	}
	access, refresh, err := uc.issuer.IssueTokenPair(claims.CompanyID, claims.UserID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{AccessToken: access, RefreshToken: refresh}, nil
}
