package handlers

import (
	"context"
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

type VotesHandler struct {
	votes ports.VoteRepository
	uc    *feedback.Votes
	log   zerolog.Logger
}

func NewVotesHandler(votes ports.VoteRepository, uc *feedback.Votes, log zerolog.Logger) *VotesHandler {
	return &VotesHandler{votes: votes, uc: uc, log: log}
}

// List serves POST /votes/list, optionally filtered by postID.
func (h *VotesHandler) List(cursorAllowed bool) http.HandlerFunc {
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
			func(v *domain.Vote) int64 { return v.Seq },
			func(ctx context.Context, offset, limit int, after int64) ([]*domain.Vote, error) {
				return h.votes.ListPage(ctx, rc.Company.ID, postID, offset, limit, after)
			})
		if err != nil {
			h.log.Error().Err(err).Msg("list votes failed")
			writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		dtos := toVoteDTOs(page.Items)
		if req.Mode == pagination.ModeCursor {
			writeJSON(w, http.StatusOK, pagination.CursorEnvelope("votes", dtos, page.HasNextPage, page.Cursor))
			return
		}
		writeJSON(w, http.StatusOK, pagination.SkipEnvelope("votes", dtos, page.HasMore))
	}
}

// Create serves POST /votes/create.
func (h *VotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	input, ok := h.voteInput(w, r, rc)
	if !ok {
		return
	}
	result, err := h.uc.Create(r.Context(), input)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVoteDTO(result.Vote))
}

// Delete serves POST /votes/delete.
func (h *VotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	input, ok := h.voteInput(w, r, rc)
	if !ok {
		return
	}
	if err := h.uc.Delete(r.Context(), input); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *VotesHandler) voteInput(w http.ResponseWriter, r *http.Request, rc *tenant.Context) (feedback.VoteInput, bool) {
	body, err := decodeBody(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return feedback.VoteInput{}, false
	}
	var postIDStr string
	field(body, "postID", &postIDStr)
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid post id")
		return feedback.VoteInput{}, false
	}
	// voterID is the public contract's name for the acting user on vote
	// operations; it wins over the generic author fields.
	voter := authorFromBody(body, rc)
	field(body, "voterID", &voter.ID)
	return feedback.VoteInput{
		CompanyID: rc.Company.ID,
		PostID:    domain.NewPostID(postID),
		Voter:     voter,
	}, true
}
