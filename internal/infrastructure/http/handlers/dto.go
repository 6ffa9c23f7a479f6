package handlers

import (
	"time"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
)

// Response DTOs. Field names follow the public API contract (camelCase,
// "created" for the creation timestamp).

type UserDTO struct {
	ID      string    `json:"id"`
	Name    string    `json:"name,omitempty"`
	Email   string    `json:"email,omitempty"`
	IsAdmin bool      `json:"isAdmin"`
	Created time.Time `json:"created"`
}

type BoardDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"postCount"`
	Created   time.Time `json:"created"`
}

type PostDTO struct {
	ID           string    `json:"id"`
	BoardID      string    `json:"boardID"`
	AuthorID     string    `json:"authorID"`
	Title        string    `json:"title"`
	Details      string    `json:"details,omitempty"`
	Status       string    `json:"status"`
	VoteCount    int       `json:"score"`
	CommentCount int       `json:"commentCount"`
	Created      time.Time `json:"created"`
}

type CommentDTO struct {
	ID       string    `json:"id"`
	PostID   string    `json:"postID"`
	AuthorID string    `json:"authorID"`
	Body     string    `json:"value"`
	Internal bool      `json:"internal"`
	Created  time.Time `json:"created"`
}

type VoteDTO struct {
	ID      string    `json:"id"`
	PostID  string    `json:"postID"`
	VoterID string    `json:"voterID"`
	Created time.Time `json:"created"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Created: u.CreatedAt,
	}
}

func toBoardDTO(b *domain.Board) BoardDTO {
	return BoardDTO{
		ID:        b.ID.String(),
		Name:      b.Name,
		Slug:      b.Slug,
		PostCount: b.PostCount,
		Created:   b.CreatedAt,
	}
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{
		ID:           p.ID.String(),
		BoardID:      p.BoardID.String(),
		AuthorID:     p.AuthorID.String(),
		Title:        p.Title,
		Details:      p.Details,
		Status:       p.Status,
		VoteCount:    p.VoteCount,
		CommentCount: p.CommentCount,
		Created:      p.CreatedAt,
	}
}

func toCommentDTO(c *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:       c.ID.String(),
		PostID:   c.PostID.String(),
		AuthorID: c.AuthorID.String(),
		Body:     c.Body,
		Internal: c.Internal,
		Created:  c.CreatedAt,
	}
}

func toVoteDTO(v *domain.Vote) VoteDTO {
	return VoteDTO{
		ID:      v.ID.String(),
		PostID:  v.PostID.String(),
		VoterID: v.VoterID.String(),
		Created: v.CreatedAt,
	}
}

func toBoardDTOs(items []*domain.Board) []BoardDTO {
	out := make([]BoardDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toBoardDTO(it))
	}
	return out
}

func toPostDTOs(items []*domain.Post) []PostDTO {
	out := make([]PostDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toPostDTO(it))
	}
	return out
}

func toCommentDTOs(items []*domain.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toCommentDTO(it))
	}
	return out
}

func toVoteDTOs(items []*domain.Vote) []VoteDTO {
	out := make([]VoteDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toVoteDTO(it))
	}
	return out
}
