package db

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID             uuid.UUID
	Name           string
	Subdomain      string
	ApiKeyHash     string
	AllowedDomains []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Board struct {
	ID        uuid.UUID
	Seq       int64
	CompanyID uuid.UUID
	Name      string
	Slug      string
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Post struct {
	ID           uuid.UUID
	Seq          int64
	BoardID      uuid.UUID
	CompanyID    uuid.UUID
	AuthorID     uuid.UUID
	Title        string
	Details      string
	Status       string
	VoteCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Comment struct {
	ID        uuid.UUID
	Seq       int64
	PostID    uuid.UUID
	CompanyID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	Internal  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Vote struct {
	ID        uuid.UUID
	Seq       int64
	PostID    uuid.UUID
	CompanyID uuid.UUID
	VoterID   uuid.UUID
	CreatedAt time.Time
}
