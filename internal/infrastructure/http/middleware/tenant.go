package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/tenant"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// Signal bodies larger than this are not mined for credentials.
const maxSignalBody = 1 << 20

const subdomainHeader = "X-Company-Subdomain"

// bodySignals are the credential fields mined from a JSON request body.
type bodySignals struct {
	APIKey    string `json:"apiKey"`
	Subdomain string `json:"subdomain"`
}

// ExtractSignals collects the raw credential signals from a request:
// Authorization bearer token, apiKey from body or query, Host header, and
// the subdomain override from body, query or the X-Company-Subdomain header
// (body beats query beats header). The body is re-buffered so downstream
// handlers can decode it again.
func ExtractSignals(r *http.Request) tenant.Signals {
	sig := tenant.Signals{Host: r.Host}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		sig.BearerToken = strings.TrimPrefix(auth, "Bearer ")
	}
	sig.APIKey = r.URL.Query().Get("apiKey")
	sig.SubdomainOverride = r.Header.Get(subdomainHeader)
	if q := r.URL.Query().Get("subdomain"); q != "" {
		sig.SubdomainOverride = q
	}
	if r.Body != nil && strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxSignalBody))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err == nil {
			var bs bodySignals
			if json.Unmarshal(raw, &bs) == nil {
				if bs.APIKey != "" {
					sig.APIKey = bs.APIKey
				}
				if bs.Subdomain != "" {
					sig.SubdomainOverride = bs.Subdomain
				}
			}
		}
	}
	return sig
}

// TenantResolver runs tenant resolution and attaches the resolved context.
type TenantResolver struct {
	resolver *tenant.Resolver
}

func NewTenantResolver(resolver *tenant.Resolver) *TenantResolver {
	return &TenantResolver{resolver: resolver}
}

// Require rejects the request with 401 unless a signal resolves a tenant.
// A well-formed key or subdomain that matches no tenant gets the same
// response as a missing one; the boundary never reveals which tenants exist.
func (m *TenantResolver) Require(next http.Handler) http.Handler {
	return m.handler(next, tenant.ModeRequired)
}

// Optional always proceeds; handlers decide whether an unresolved tenant is
// acceptable and apply their own fallback.
func (m *TenantResolver) Optional(next http.Handler) http.Handler {
	return m.handler(next, tenant.ModeOptional)
}

func (m *TenantResolver) handler(next http.Handler, mode tenant.Mode) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, err := m.resolver.Resolve(r.Context(), ExtractSignals(r), mode)
		if err != nil {
			if errors.Is(err, domerrors.ErrUnauthenticated) {
				writeResolveErr(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			writeResolveErr(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		RecordTenantResolution(string(rc.Method))
		next.ServeHTTP(w, r.WithContext(WithResolved(r.Context(), rc)))
	})
}

// RequireUser rejects the request unless a bearer token resolved a user.
// Chain after Require.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := ResolvedFromContext(r.Context())
		if !rc.Authenticated() {
			writeResolveErr(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects the request unless the resolved user has the admin
// flag. Chain after Require.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := ResolvedFromContext(r.Context())
		if !rc.Authenticated() {
			writeResolveErr(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if !rc.User.IsAdmin {
			writeResolveErr(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeResolveErr(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
