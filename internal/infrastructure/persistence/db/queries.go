package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries bundles hand-written SQL for the feedback schema.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Companies

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Subdomain, &c.ApiKeyHash, &c.AllowedDomains, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (q *Queries) CreateCompany(ctx context.Context, c Company) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO companies (id, name, subdomain, api_key_hash, allowed_domains, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`,
		c.ID, c.Name, c.Subdomain, c.ApiKeyHash, c.AllowedDomains, c.CreatedAt, c.UpdatedAt)
	return err
}

func (q *Queries) GetCompanyByID(ctx context.Context, id uuid.UUID) (Company, error) {
	return scanCompany(q.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(subdomain, ''), api_key_hash, allowed_domains, created_at, updated_at
		 FROM companies WHERE id = $1`, id))
}

func (q *Queries) GetCompanyBySubdomain(ctx context.Context, subdomain string) (Company, error) {
	return scanCompany(q.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(subdomain, ''), api_key_hash, allowed_domains, created_at, updated_at
		 FROM companies WHERE subdomain = $1`, subdomain))
}

func (q *Queries) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, name, COALESCE(subdomain, ''), api_key_hash, allowed_domains, created_at, updated_at
		 FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (q *Queries) FirstCompany(ctx context.Context) (Company, error) {
	return scanCompany(q.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(subdomain, ''), api_key_hash, allowed_domains, created_at, updated_at
		 FROM companies ORDER BY created_at LIMIT 1`))
}

func (q *Queries) UpdateCompanyAPIKeyHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE companies SET api_key_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	return err
}

// Users

const userColumns = `id, company_id, name, COALESCE(email, ''), password_hash, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (q *Queries) CreateUser(ctx context.Context, u User) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO users (id, company_id, name, email, password_hash, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`,
		u.ID, u.CompanyID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
	return err
}

func (q *Queries) GetUserByID(ctx context.Context, companyID, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND id = $2`, companyID, id))
}

func (q *Queries) GetUserByEmail(ctx context.Context, companyID uuid.UUID, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 AND email = $2`, companyID, email))
}

// GetUserByEmailAnyCompany ignores tenant scoping; reserved for the
// local-development login shortcut.
func (q *Queries) GetUserByEmailAnyCompany(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at LIMIT 1`, email))
}

func (q *Queries) ListUsersPage(ctx context.Context, companyID uuid.UUID, offset, limit int, after int64) ([]User, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE company_id = $1 AND ($2::bigint = 0 OR seq < $2)
		 ORDER BY seq DESC OFFSET $3 LIMIT $4`, companyID, after, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Boards

const boardColumns = `id, seq, company_id, name, slug, post_count, created_at, updated_at`

func scanBoard(row pgx.Row) (Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Seq, &b.CompanyID, &b.Name, &b.Slug, &b.PostCount, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (q *Queries) CreateBoard(ctx context.Context, b Board) (int64, error) {
	var seq int64
	err := q.db.QueryRow(ctx,
		`INSERT INTO boards (id, company_id, name, slug, post_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING seq`,
		b.ID, b.CompanyID, b.Name, b.Slug, b.PostCount, b.CreatedAt, b.UpdatedAt).Scan(&seq)
	return seq, err
}

func (q *Queries) GetBoardByID(ctx context.Context, companyID, id uuid.UUID) (Board, error) {
	return scanBoard(q.db.QueryRow(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE company_id = $1 AND id = $2`, companyID, id))
}

func (q *Queries) GetBoardBySlug(ctx context.Context, companyID uuid.UUID, slug string) (Board, error) {
	return scanBoard(q.db.QueryRow(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE company_id = $1 AND slug = $2`, companyID, slug))
}

func (q *Queries) ListBoardsPage(ctx context.Context, companyID uuid.UUID, offset, limit int, after int64) ([]Board, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+boardColumns+` FROM boards
		 WHERE company_id = $1 AND ($2::bigint = 0 OR seq < $2)
		 ORDER BY seq DESC OFFSET $3 LIMIT $4`, companyID, after, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (q *Queries) AdjustBoardPostCount(ctx context.Context, companyID, id uuid.UUID, delta int) error {
	_, err := q.db.Exec(ctx,
		`UPDATE boards SET post_count = post_count + $3, updated_at = now()
		 WHERE company_id = $1 AND id = $2`, companyID, id, delta)
	return err
}

// Posts

const postColumns = `id, seq, board_id, company_id, author_id, title, details, status, vote_count, comment_count, created_at, updated_at`

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Seq, &p.BoardID, &p.CompanyID, &p.AuthorID, &p.Title, &p.Details, &p.Status, &p.VoteCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *Queries) CreatePost(ctx context.Context, p Post) (int64, error) {
	var seq int64
	err := q.db.QueryRow(ctx,
		`INSERT INTO posts (id, board_id, company_id, author_id, title, details, status, vote_count, comment_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING seq`,
		p.ID, p.BoardID, p.CompanyID, p.AuthorID, p.Title, p.Details, p.Status, p.VoteCount, p.CommentCount, p.CreatedAt, p.UpdatedAt).Scan(&seq)
	return seq, err
}

func (q *Queries) GetPostByID(ctx context.Context, companyID, id uuid.UUID) (Post, error) {
	return scanPost(q.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE company_id = $1 AND id = $2`, companyID, id))
}

func (q *Queries) GetPostByIDUnscoped(ctx context.Context, id uuid.UUID) (Post, error) {
	return scanPost(q.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (q *Queries) ListPostsPage(ctx context.Context, companyID uuid.UUID, boardID *uuid.UUID, status string, offset, limit int, after int64) ([]Post, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE company_id = $1
		   AND ($2::uuid IS NULL OR board_id = $2)
		   AND ($3::text = '' OR status = $3)
		   AND ($4::bigint = 0 OR seq < $4)
		 ORDER BY seq DESC OFFSET $5 LIMIT $6`,
		companyID, boardID, status, after, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (q *Queries) AdjustPostVoteCount(ctx context.Context, companyID, id uuid.UUID, delta int) error {
	_, err := q.db.Exec(ctx,
		`UPDATE posts SET vote_count = GREATEST(vote_count + $3, 0), updated_at = now()
		 WHERE company_id = $1 AND id = $2`, companyID, id, delta)
	return err
}

func (q *Queries) AdjustPostCommentCount(ctx context.Context, companyID, id uuid.UUID, delta int) error {
	_, err := q.db.Exec(ctx,
		`UPDATE posts SET comment_count = GREATEST(comment_count + $3, 0), updated_at = now()
		 WHERE company_id = $1 AND id = $2`, companyID, id, delta)
	return err
}

// Comments

const commentColumns = `id, seq, post_id, company_id, author_id, body, internal, created_at, updated_at`

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.Seq, &c.PostID, &c.CompanyID, &c.AuthorID, &c.Body, &c.Internal, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (q *Queries) CreateComment(ctx context.Context, c Comment) (int64, error) {
	var seq int64
	err := q.db.QueryRow(ctx,
		`INSERT INTO comments (id, post_id, company_id, author_id, body, internal, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING seq`,
		c.ID, c.PostID, c.CompanyID, c.AuthorID, c.Body, c.Internal, c.CreatedAt, c.UpdatedAt).Scan(&seq)
	return seq, err
}

func (q *Queries) ListCommentsPage(ctx context.Context, companyID uuid.UUID, postID *uuid.UUID, offset, limit int, after int64) ([]Comment, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE company_id = $1
		   AND ($2::uuid IS NULL OR post_id = $2)
		   AND ($3::bigint = 0 OR seq < $3)
		 ORDER BY seq DESC OFFSET $4 LIMIT $5`,
		companyID, postID, after, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Votes

const voteColumns = `id, seq, post_id, company_id, voter_id, created_at`

func scanVote(row pgx.Row) (Vote, error) {
	var v Vote
	err := row.Scan(&v.ID, &v.Seq, &v.PostID, &v.CompanyID, &v.VoterID, &v.CreatedAt)
	return v, err
}

func (q *Queries) CreateVote(ctx context.Context, v Vote) (int64, error) {
	var seq int64
	err := q.db.QueryRow(ctx,
		`INSERT INTO votes (id, post_id, company_id, voter_id, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING seq`,
		v.ID, v.PostID, v.CompanyID, v.VoterID, v.CreatedAt).Scan(&seq)
	return seq, err
}

func (q *Queries) GetVoteByPostAndVoter(ctx context.Context, companyID, postID, voterID uuid.UUID) (Vote, error) {
	return scanVote(q.db.QueryRow(ctx,
		`SELECT `+voteColumns+` FROM votes
		 WHERE company_id = $1 AND post_id = $2 AND voter_id = $3`, companyID, postID, voterID))
}

func (q *Queries) DeleteVote(ctx context.Context, companyID, postID, voterID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM votes WHERE company_id = $1 AND post_id = $2 AND voter_id = $3`,
		companyID, postID, voterID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ListVotesPage(ctx context.Context, companyID uuid.UUID, postID *uuid.UUID, offset, limit int, after int64) ([]Vote, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+voteColumns+` FROM votes
		 WHERE company_id = $1
		   AND ($2::uuid IS NULL OR post_id = $2)
		   AND ($3::bigint = 0 OR seq < $3)
		 ORDER BY seq DESC OFFSET $4 LIMIT $5`,
		companyID, postID, after, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
