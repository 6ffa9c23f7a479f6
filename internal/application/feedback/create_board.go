package feedback

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
)

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

type CreateBoardInput struct {
	CompanyID domain.CompanyID
	Name      string
	Slug      string // derived from Name when empty
}

// CreateBoard creates a board for the company.
type CreateBoard struct {
	boards ports.BoardRepository
}

func NewCreateBoard(boards ports.BoardRepository) *CreateBoard {
	return &CreateBoard{boards: boards}
}

func (uc *CreateBoard) Execute(ctx context.Context, input CreateBoardInput) (*domain.Board, error) {
	name := strings.TrimSpace(input.Name)
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	now := time.Now()
	board := &domain.Board{
		ID:        domain.NewBoardID(uuid.New()),
		CompanyID: input.CompanyID,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Slugify lowercases and collapses non-alphanumerics to single hyphens.
func Slugify(s string) string {
	s = slugCleanup.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
