package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/feedback"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/pagination"
)

type CommentsHandler struct {
	comments ports.CommentRepository
	create   *feedback.CreateComment
	log      zerolog.Logger
}

func NewCommentsHandler(comments ports.CommentRepository, create *feedback.CreateComment, log zerolog.Logger) *CommentsHandler {
	return &CommentsHandler{comments: comments, create: create, log: log}
}

// List serves POST /comments/list, optionally filtered by postID. Internal
// comments are included only for bearer-authenticated callers.
func (h *CommentsHandler) List(cursorAllowed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := middleware.ResolvedFromContext(r.Context())
		body, err := decodeBody(r)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
			return
		}
		var postIDStr string
		field(body, "postID", &postIDStr)
		var postID *domain.PostID
		if postIDStr != "" {
			id, parseErr := uuid.Parse(postIDStr)
			if parseErr != nil {
				writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid post id")
				return
			}
			pid := domain.NewPostID(id)
			postID = &pid
		}
		req := pagination.ParseBody(body, cursorAllowed)
		page, err := pagination.Paginate(r.Context(), req,
			func(c *domain.Comment) int64 { return c.Seq },
			func(ctx context.Context, offset, limit int, after int64) ([]*domain.Comment, error) {
				return h.comments.ListPage(ctx, rc.Company.ID, postID, offset, limit, after)
			})
		if err != nil {
			h.log.Error().Err(err).Msg("list comments failed")
			writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		items := page.Items
		if !rc.Authenticated() {
			items = dropInternal(items)
		}
		dtos := toCommentDTOs(items)
		if req.Mode == pagination.ModeCursor {
			writeJSON(w, http.StatusOK, pagination.CursorEnvelope("comments", dtos, page.HasNextPage, page.Cursor))
			return
		}
		writeJSON(w, http.StatusOK, pagination.SkipEnvelope("comments", dtos, page.HasMore))
	}
}

// Create serves POST /comments/create. When no signal resolved a tenant the
// comment's company is derived from its owning post, so the route is mounted
// with optional resolution.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	var postIDStr, value string
	var internal bool
	field(body, "postID", &postIDStr)
	field(body, "value", &value)
	field(body, "internal", &internal)
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid post id")
		return
	}
	if value == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "value required")
		return
	}
	var companyID *domain.CompanyID
	if rc.Resolved() {
		companyID = &rc.Company.ID
	}
	if internal && !rc.Authenticated() {
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, "internal comments require authentication")
		return
	}
	result, err := h.create.Execute(r.Context(), feedback.CreateCommentInput{
		CompanyID: companyID,
		PostID:    domain.NewPostID(postID),
		Author:    authorFromBody(body, rc),
		Body:      TruncateBody(value),
		Internal:  internal,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(result.Comment))
}

// dropInternal hides internal comments from unauthenticated callers. It runs
// after paging, so a page containing internal comments comes back short while
// hasMore/cursor still track the unfiltered set; continuation stays correct
// because the cursor is taken before filtering.
func dropInternal(items []*domain.Comment) []*domain.Comment {
	out := items[:0:0]
	for _, c := range items {
		if !c.Internal {
			out = append(out, c)
		}
	}
	return out
}
