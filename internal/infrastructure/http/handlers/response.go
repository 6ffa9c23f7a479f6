package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	case http.StatusInternalServerError:
		return ErrCodeInternal
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps sentinel errors to transport responses. Tenant lookup
// failures surface as plain unauthorized so the boundary does not reveal
// which tenants exist.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrUnauthenticated), errors.Is(err, domerrors.ErrCompanyNotFound):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "please authenticate")
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, domerrors.ErrInvalidCredentials.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, domerrors.ErrInvalidToken.Error())
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, domerrors.ErrAccountLocked.Error())
	case errors.Is(err, domerrors.ErrUserExists), errors.Is(err, domerrors.ErrDuplicateVote), errors.Is(err, domerrors.ErrSubdomainTaken):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrNotFound), errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// decodeBody reads the request body as a loose JSON object. List endpoints
// need raw access to paging keys (cursor presence selects the mode), so the
// same map feeds both pagination parsing and field decoding.
func decodeBody(r *http.Request) (map[string]json.RawMessage, error) {
	body := map[string]json.RawMessage{}
	if r.Body == nil {
		return body, nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return body, nil
}

// field decodes one key of a loose body into v; absent keys are left alone.
func field(body map[string]json.RawMessage, key string, v interface{}) {
	if raw, ok := body[key]; ok {
		_ = json.Unmarshal(raw, v)
	}
}
