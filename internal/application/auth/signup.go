package auth

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

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignupInput struct {
	CompanyID domain.CompanyID
	Name      string
	Email     string
	Password  string
	IsAdmin   bool
}

type SignupResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Signup creates a credentialed user in the company and logs it in.
type Signup struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signup {
	return &Signup{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domerrors.ErrInvalidCredentials
	}
	existing, err := uc.users.GetByEmail(ctx, input.CompanyID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		CompanyID:    input.CompanyID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      input.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	access, refresh, err := uc.issuer.IssueTokenPair(input.CompanyID.String(), user.ID.String(), user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &SignupResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
