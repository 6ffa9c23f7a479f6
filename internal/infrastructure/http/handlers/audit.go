package handlers

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
)

// AuditLog logs auth events (company_id, user_id, IP) and feeds the auth
// attempt counter.
func AuditLog(log zerolog.Logger, r *http.Request, event string, companyID, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("company_id", companyID).
		Str("user_id", userID).
		Str("ip", getClientIP(r)).
		Str("request_id", chimw.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
	middleware.RecordAuthAttempt(event, success)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
