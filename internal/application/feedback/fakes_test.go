package feedback

import (
	"context"
	"sync"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// In-memory fakes for the repository ports. Seq assignment mimics the
// database identity column: one shared counter per fake store.

type memUsers struct {
	users []*domain.User
}

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, companyID domain.CompanyID, userID domain.UserID) (*domain.User, error) {
	for _, u := range r.users {
		if u.CompanyID == companyID && u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByEmail(_ context.Context, companyID domain.CompanyID, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByEmailAnyCompany(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) ListPage(_ context.Context, _ domain.CompanyID, _, _ int, _ int64) ([]*domain.User, error) {
	return nil, nil
}

type memBoards struct {
	boards []*domain.Board
	seq    int64
}

func (r *memBoards) Create(_ context.Context, b *domain.Board) error {
	r.seq++
	b.Seq = r.seq
	r.boards = append(r.boards, b)
	return nil
}

func (r *memBoards) GetByID(_ context.Context, companyID domain.CompanyID, boardID domain.BoardID) (*domain.Board, error) {
	for _, b := range r.boards {
		if b.CompanyID == companyID && b.ID == boardID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBoards) GetBySlug(_ context.Context, companyID domain.CompanyID, slug string) (*domain.Board, error) {
	for _, b := range r.boards {
		if b.CompanyID == companyID && b.Slug == slug {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBoards) ListPage(_ context.Context, companyID domain.CompanyID, offset, limit int, after int64) ([]*domain.Board, error) {
	var out []*domain.Board
	for i := len(r.boards) - 1; i >= 0 && len(out) < limit; i-- {
		b := r.boards[i]
		if b.CompanyID != companyID {
			continue
		}
		if after != 0 && b.Seq >= after {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBoards) AdjustPostCount(_ context.Context, companyID domain.CompanyID, boardID domain.BoardID, delta int) error {
	for _, b := range r.boards {
		if b.CompanyID == companyID && b.ID == boardID {
			b.PostCount += delta
		}
	}
	return nil
}

type memPosts struct {
	posts []*domain.Post
	seq   int64
}

func (r *memPosts) Create(_ context.Context, p *domain.Post) error {
	r.seq++
	p.Seq = r.seq
	r.posts = append(r.posts, p)
	return nil
}

func (r *memPosts) GetByID(_ context.Context, companyID domain.CompanyID, postID domain.PostID) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.CompanyID == companyID && p.ID == postID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPosts) GetByIDUnscoped(_ context.Context, postID domain.PostID) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.ID == postID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPosts) ListPage(_ context.Context, companyID domain.CompanyID, filter ports.PostFilter, offset, limit int, after int64) ([]*domain.Post, error) {
	var out []*domain.Post
	for i := len(r.posts) - 1; i >= 0 && len(out) < limit; i-- {
		p := r.posts[i]
		if p.CompanyID != companyID {
			continue
		}
		if filter.BoardID != nil && p.BoardID != *filter.BoardID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if after != 0 && p.Seq >= after {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memPosts) AdjustVoteCount(_ context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error {
	for _, p := range r.posts {
		if p.CompanyID == companyID && p.ID == postID {
			p.VoteCount += delta
			if p.VoteCount < 0 {
				p.VoteCount = 0
			}
		}
	}
	return nil
}

func (r *memPosts) AdjustCommentCount(_ context.Context, companyID domain.CompanyID, postID domain.PostID, delta int) error {
	for _, p := range r.posts {
		if p.CompanyID == companyID && p.ID == postID {
			p.CommentCount += delta
		}
	}
	return nil
}

type memComments struct {
	comments []*domain.Comment
	seq      int64
}

func (r *memComments) Create(_ context.Context, c *domain.Comment) error {
	r.seq++
	c.Seq = r.seq
	r.comments = append(r.comments, c)
	return nil
}

func (r *memComments) ListPage(_ context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for i := len(r.comments) - 1; i >= 0 && len(out) < limit; i-- {
		c := r.comments[i]
		if c.CompanyID != companyID {
			continue
		}
		if postID != nil && c.PostID != *postID {
			continue
		}
		if after != 0 && c.Seq >= after {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memVotes struct {
	votes []*domain.Vote
	seq   int64
}

func (r *memVotes) Create(_ context.Context, v *domain.Vote) error {
	for _, existing := range r.votes {
		if existing.PostID == v.PostID && existing.VoterID == v.VoterID {
			return domerrors.ErrDuplicateVote
		}
	}
	r.seq++
	v.Seq = r.seq
	r.votes = append(r.votes, v)
	return nil
}

func (r *memVotes) GetByPostAndVoter(_ context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) (*domain.Vote, error) {
	for _, v := range r.votes {
		if v.CompanyID == companyID && v.PostID == postID && v.VoterID == voterID {
			return v, nil
		}
	}
	return nil, nil
}

func (r *memVotes) Delete(_ context.Context, companyID domain.CompanyID, postID domain.PostID, voterID domain.UserID) error {
	for i, v := range r.votes {
		if v.CompanyID == companyID && v.PostID == postID && v.VoterID == voterID {
			r.votes = append(r.votes[:i], r.votes[i+1:]...)
			return nil
		}
	}
	return domerrors.ErrNotFound
}

func (r *memVotes) ListPage(_ context.Context, companyID domain.CompanyID, postID *domain.PostID, offset, limit int, after int64) ([]*domain.Vote, error) {
	var out []*domain.Vote
	for i := len(r.votes) - 1; i >= 0 && len(out) < limit; i-- {
		v := r.votes[i]
		if v.CompanyID != companyID {
			continue
		}
		if postID != nil && v.PostID != *postID {
			continue
		}
		if after != 0 && v.Seq >= after {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (n *recordingNotifier) Publish(_ context.Context, e ports.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}
