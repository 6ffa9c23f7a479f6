package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// AuthorRef identifies the acting user of a third-party API call. ID wins
// when set; otherwise the email is matched or a new user is minted; with
// neither, an email-less shadow user is created for the submission.
type AuthorRef struct {
	ID    string
	Email string
	Name  string
}

func resolveAuthor(ctx context.Context, users ports.UserRepository, companyID domain.CompanyID, ref AuthorRef) (*domain.User, error) {
	if ref.ID != "" {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return nil, domerrors.ErrUserNotFound
		}
		user, err := users.GetByID(ctx, companyID, domain.NewUserID(id))
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domerrors.ErrUserNotFound
		}
		return user, nil
	}
	email := strings.ToLower(strings.TrimSpace(ref.Email))
	if email != "" {
		user, err := users.GetByEmail(ctx, companyID, email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	now := time.Now()
	user := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		CompanyID: companyID,
		Name:      strings.TrimSpace(ref.Name),
		Email:     email, // empty makes this a shadow user
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// lookupAuthor resolves an AuthorRef without ever minting a user. Removal
// operations use it: an unknown voter cannot own anything to remove.
func lookupAuthor(ctx context.Context, users ports.UserRepository, companyID domain.CompanyID, ref AuthorRef) (*domain.User, error) {
	if ref.ID != "" {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return nil, domerrors.ErrUserNotFound
		}
		user, err := users.GetByID(ctx, companyID, domain.NewUserID(id))
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domerrors.ErrUserNotFound
		}
		return user, nil
	}
	email := strings.ToLower(strings.TrimSpace(ref.Email))
	if email == "" {
		return nil, domerrors.ErrUserNotFound
	}
	user, err := users.GetByEmail(ctx, companyID, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}
