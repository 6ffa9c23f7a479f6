package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

type world struct {
	users    *memUsers
	boards   *memBoards
	posts    *memPosts
	comments *memComments
	votes    *memVotes
	notifier *recordingNotifier
	company  domain.CompanyID
	board    *domain.Board
	post     *domain.Post
	author   *domain.User
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		users:    &memUsers{},
		boards:   &memBoards{},
		posts:    &memPosts{},
		comments: &memComments{},
		votes:    &memVotes{},
		notifier: &recordingNotifier{},
		company:  domain.NewCompanyID(uuid.New()),
	}
	now := time.Now()
	w.author = &domain.User{ID: domain.NewUserID(uuid.New()), CompanyID: w.company, Email: "user@acme.test", CreatedAt: now}
	w.users.users = append(w.users.users, w.author)
	w.board = &domain.Board{ID: domain.NewBoardID(uuid.New()), CompanyID: w.company, Name: "Features", Slug: "features", CreatedAt: now}
	_ = w.boards.Create(context.Background(), w.board)
	w.post = &domain.Post{
		ID:        domain.NewPostID(uuid.New()),
		BoardID:   w.board.ID,
		CompanyID: w.company,
		AuthorID:  w.author.ID,
		Title:     "Dark mode",
		Status:    domain.PostStatusOpen,
		CreatedAt: now,
	}
	_ = w.posts.Create(context.Background(), w.post)
	return w
}

func TestCreateCommentScopedTenant(t *testing.T) {
	w := newWorld(t)
	uc := NewCreateComment(w.comments, w.posts, w.users, w.notifier, zerolog.Nop())

	result, err := uc.Execute(context.Background(), CreateCommentInput{
		CompanyID: &w.company,
		PostID:    w.post.ID,
		Author:    AuthorRef{ID: w.author.ID.String()},
		Body:      "  please ship this  ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Comment.Body != "please ship this" {
		t.Errorf("body = %q", result.Comment.Body)
	}
	if result.Comment.CompanyID != w.company {
		t.Error("comment not scoped to the company")
	}
	if w.post.CommentCount != 1 {
		t.Errorf("comment count = %d, want 1", w.post.CommentCount)
	}
	if len(w.notifier.events) != 1 || w.notifier.events[0].Type != ports.EventCommentCreated {
		t.Errorf("events = %+v", w.notifier.events)
	}
}

// With no resolved tenant the comment inherits its company from the owning
// post.
func TestCreateCommentDerivesTenantFromPost(t *testing.T) {
	w := newWorld(t)
	uc := NewCreateComment(w.comments, w.posts, w.users, w.notifier, zerolog.Nop())

	result, err := uc.Execute(context.Background(), CreateCommentInput{
		CompanyID: nil,
		PostID:    w.post.ID,
		Author:    AuthorRef{Email: "guest@elsewhere.test", Name: "Guest"},
		Body:      "works for me",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Comment.CompanyID != w.company {
		t.Errorf("comment company = %v, want the post's company", result.Comment.CompanyID)
	}
	if result.Author.CompanyID != w.company {
		t.Error("minted author not scoped to the post's company")
	}
	if result.Author.IsShadow() {
		t.Error("author with an email should not be a shadow user")
	}
}

func TestCreateCommentUnknownPost(t *testing.T) {
	w := newWorld(t)
	uc := NewCreateComment(w.comments, w.posts, w.users, w.notifier, zerolog.Nop())

	_, err := uc.Execute(context.Background(), CreateCommentInput{
		CompanyID: nil,
		PostID:    domain.NewPostID(uuid.New()),
		Author:    AuthorRef{Name: "Guest"},
		Body:      "hello",
	})
	if !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// A tenant resolved from signals must not reach another tenant's post even
// when the post id is valid.
func TestCreateCommentCrossTenantScoping(t *testing.T) {
	w := newWorld(t)
	uc := NewCreateComment(w.comments, w.posts, w.users, w.notifier, zerolog.Nop())
	other := domain.NewCompanyID(uuid.New())

	_, err := uc.Execute(context.Background(), CreateCommentInput{
		CompanyID: &other,
		PostID:    w.post.ID,
		Author:    AuthorRef{Name: "Guest"},
		Body:      "hello",
	})
	if !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreatePostMintsShadowAuthor(t *testing.T) {
	w := newWorld(t)
	uc := NewCreatePost(w.posts, w.boards, w.users, w.notifier, zerolog.Nop())

	result, err := uc.Execute(context.Background(), CreatePostInput{
		CompanyID: w.company,
		BoardID:   w.board.ID,
		Author:    AuthorRef{Name: "Anonymous"},
		Title:     "Better search",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Author.IsShadow() {
		t.Error("author without email should be a shadow user")
	}
	if result.Post.Status != domain.PostStatusOpen {
		t.Errorf("status = %q", result.Post.Status)
	}
	if w.board.PostCount != 1 {
		t.Errorf("board post count = %d, want 1", w.board.PostCount)
	}
}
