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

type BoardsHandler struct {
	boards ports.BoardRepository
	create *feedback.CreateBoard
	log    zerolog.Logger
}

func NewBoardsHandler(boards ports.BoardRepository, create *feedback.CreateBoard, log zerolog.Logger) *BoardsHandler {
	return &BoardsHandler{boards: boards, create: create, log: log}
}

// List serves POST /boards/list. cursorAllowed selects whether a cursor key
// in the body switches the call to cursor paging (v2) or is ignored (v1).
func (h *BoardsHandler) List(cursorAllowed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := middleware.ResolvedFromContext(r.Context())
		body, err := decodeBody(r)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
			return
		}
		req := pagination.ParseBody(body, cursorAllowed)
		page, err := pagination.Paginate(r.Context(), req,
			func(b *domain.Board) int64 { return b.Seq },
			func(ctx context.Context, offset, limit int, after int64) ([]*domain.Board, error) {
				return h.boards.ListPage(ctx, rc.Company.ID, offset, limit, after)
			})
		if err != nil {
			h.log.Error().Err(err).Msg("list boards failed")
			writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		dtos := toBoardDTOs(page.Items)
		if req.Mode == pagination.ModeCursor {
			writeJSON(w, http.StatusOK, pagination.CursorEnvelope("boards", dtos, page.HasNextPage, page.Cursor))
			return
		}
		writeJSON(w, http.StatusOK, pagination.SkipEnvelope("boards", dtos, page.HasMore))
	}
}

// Retrieve serves POST /boards/retrieve; the board is looked up by id or,
// when id is absent, by slug ("urlName" in the public contract).
func (h *BoardsHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	var idStr, slug string
	field(body, "id", &idStr)
	field(body, "urlName", &slug)

	var board *domain.Board
	switch {
	case idStr != "":
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid board id")
			return
		}
		board, err = h.boards.GetByID(r.Context(), rc.Company.ID, domain.NewBoardID(id))
	case slug != "":
		board, err = h.boards.GetBySlug(r.Context(), rc.Company.ID, slug)
	default:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "id or urlName required")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("retrieve board failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if board == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "board not found")
		return
	}
	writeJSON(w, http.StatusOK, toBoardDTO(board))
}

// Create serves POST /boards/create.
func (h *BoardsHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	var name, slug string
	field(body, "name", &name)
	field(body, "urlName", &slug)
	name = SanitizeTitle(name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "name required")
		return
	}
	board, err := h.create.Execute(r.Context(), feedback.CreateBoardInput{
		CompanyID: rc.Company.ID,
		Name:      name,
		Slug:      slug,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create board failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBoardDTO(board))
}
