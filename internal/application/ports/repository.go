package ports

import (
	"context"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
)

// CompanyRepository defines persistence for companies (tenants).
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, companyID domain.CompanyID) (*domain.Company, error)
	// GetBySubdomain looks up the tenant by its lowercase subdomain.
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Company, error)
	// List returns all companies. API keys are stored only as salted one-way
	// hashes, so key verification has to scan this list; see
	// company.CredentialStore.
	List(ctx context.Context) ([]*domain.Company, error)
	// First returns the oldest company, or nil when none exist. Used as the
	// last-resort fallback tenant for single-tenant deployments.
	First(ctx context.Context) (*domain.Company, error)
	UpdateAPIKeyHash(ctx context.Context, companyID domain.CompanyID, hash string) error
}

// UserRepository defines persistence for users (company-scoped).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, companyID domain.CompanyID, userID domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, companyID domain.CompanyID, email string) (*domain.User, error)
	// GetByEmailAnyCompany searches the email across all tenants. Confined to
	// the local-development login shortcut; never used for general tenant
	// resolution.
	GetByEmailAnyCompany(ctx context.Context, email string) (*domain.User, error)
	ListPage(ctx context.Context, companyID domain.CompanyID, offset, limit int, after int64) ([]*domain.User, error)
}

// BoardRepository defines persistence for boards.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, companyID domain.CompanyID, boardID domain.BoardID) (*domain.Board, error)
	GetBySlug(ctx context.Context, companyID domain.CompanyID, slug string) (*domain.Board, error)
	// ListPage returns up to limit boards sorted by seq descending. Exactly
	// one of offset (skip mode) or after (cursor watermark, 0 = none) is set.
	ListPage(ctx context.Context, companyID domain.CompanyID, offset, limit int, after int64) ([]*domain.Board, error)
	// AdjustPostCount atomically adds delta to the board's post counter.
	AdjustPostCount(ctx context.Context, companyID domain.CompanyID, boardID domain.BoardID, delta int) error
}

// PostFilter narrows a post listing; zero values mean no filtering.
type PostFilter struct {
	BoardID *domain.BoardID
	Status  string
}

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, companyID domain.CompanyID, postID domain.PostID) (*domain.Post, error)
	// GetByIDUnscoped loads a post without tenant scoping. Used only by the
	// nearest-parent tenant fallback when creating comments.
	GetByIDUnscoped(ctx context.Context, postID domain.PostID) (*domain.Post, error)
	ListPage(ctx context.Context, companyID domain.CompanyID, filter PostFilter, offset, limit int, after int64) ([]*domain.Post, error)
	// AdjustVoteCount atomically adds delta to the post's vote counter.
	AdjustVoteCount(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error
	// AdjustCommentCount atomically adds delta to the post's comment counter.
	AdjustCommentCount(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListPage(ctx context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Comment, error)
}

// VoteRepository defines persistence for votes.
type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	GetByPostAndVoter(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) (*domain.Vote, error)
	Delete(ctx context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) error
	ListPage(ctx context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Vote, error)
}
