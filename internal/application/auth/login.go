package auth

import (
	"context"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type LoginInput struct {
	CompanyID domain.CompanyID
	Email     string
	Password  string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// Login verifies credentials and issues a token pair. Failed attempts feed
// the lockout store; a locked account fails fast without touching the hash.
type Login struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	lockout ports.LoginLockoutStore
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, lockout: lockout}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	companyID := input.CompanyID.String()
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, companyID, input.Email); locked {
			return nil, domerrors.ErrAccountLocked
		}
	}
	user, err := uc.users.GetByEmail(ctx, input.CompanyID, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, companyID, input.Email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, companyID, input.Email)
	}
	access, refresh, err := uc.issuer.IssueTokenPair(companyID, user.ID.String(), user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
