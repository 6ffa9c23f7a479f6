package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/feedback"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/tenant"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/pagination"
)

type PostsHandler struct {
	posts  ports.PostRepository
	create *feedback.CreatePost
	log    zerolog.Logger
}

func NewPostsHandler(posts ports.PostRepository, create *feedback.CreatePost, log zerolog.Logger) *PostsHandler {
	return &PostsHandler{posts: posts, create: create, log: log}
}

// List serves POST /posts/list, optionally filtered by boardID and status.
func (h *PostsHandler) List(cursorAllowed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := middleware.ResolvedFromContext(r.Context())
		body, err := decodeBody(r)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
			return
		}
		var boardIDStr, status string
		field(body, "boardID", &boardIDStr)
		field(body, "status", &status)
		filter := ports.PostFilter{Status: status}
		if boardIDStr != "" {
			id, parseErr := uuid.Parse(boardIDStr)
			if parseErr != nil {
				writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid board id")
				return
			}
			boardID := domain.NewBoardID(id)
			filter.BoardID = &boardID
		}
		req := pagination.ParseBody(body, cursorAllowed)
		page, err := pagination.Paginate(r.Context(), req,
			func(p *domain.Post) int64 { return p.Seq },
			func(ctx context.Context, offset, limit int, after int64) ([]*domain.Post, error) {
				return h.posts.ListPage(ctx, rc.Company.ID, filter, offset, limit, after)
			})
		if err != nil {
			h.log.Error().Err(err).Msg("list posts failed")
			writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		dtos := toPostDTOs(page.Items)
		if req.Mode == pagination.ModeCursor {
			writeJSON(w, http.StatusOK, pagination.CursorEnvelope("posts", dtos, page.HasNextPage, page.Cursor))
			return
		}
		writeJSON(w, http.StatusOK, pagination.SkipEnvelope("posts", dtos, page.HasMore))
	}
}

// Retrieve serves POST /posts/retrieve.
func (h *PostsHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	var idStr string
	field(body, "id", &idStr)
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid post id")
		return
	}
	post, err := h.posts.GetByID(r.Context(), rc.Company.ID, domain.NewPostID(id))
	if err != nil {
		h.log.Error().Err(err).Msg("retrieve post failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if post == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// Create serves POST /posts/create. The author may be an existing user (by
// id), matched or minted by email, or a fresh shadow user.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	var boardIDStr, title, details string
	field(body, "boardID", &boardIDStr)
	field(body, "title", &title)
	field(body, "details", &details)
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid board id")
		return
	}
	title = SanitizeTitle(title)
	if title == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "title required")
		return
	}
	result, err := h.create.Execute(r.Context(), feedback.CreatePostInput{
		CompanyID: rc.Company.ID,
		BoardID:   domain.NewBoardID(boardID),
		Author:    authorFromBody(body, rc),
		Title:     title,
		Details:   TruncateBody(details),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(result.Post))
}

// authorFromBody builds the acting-user reference for a write: an explicit
// authorID wins, then the bearer-resolved user, then external name/email.
func authorFromBody(body map[string]json.RawMessage, rc *tenant.Context) feedback.AuthorRef {
	var ref feedback.AuthorRef
	field(body, "authorID", &ref.ID)
	field(body, "authorEmail", &ref.Email)
	field(body, "authorName", &ref.Name)
	if ref.ID == "" && rc.Authenticated() {
		ref.ID = rc.User.ID.String()
	}
	return ref
}
