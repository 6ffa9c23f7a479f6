package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/auth"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/tenant"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
)

// AuthHandler serves the first-party dashboard auth endpoints. The tenant is
// taken from the resolved request context when present; login additionally
// supports the resolver's login-only fallbacks.
type AuthHandler struct {
	signup   *auth.Signup
	login    *auth.Login
	refresh  *auth.Refresh
	resolver *tenant.Resolver
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, login *auth.Login, refresh *auth.Refresh, resolver *tenant.Resolver, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		login:    login,
		refresh:  refresh,
		resolver: resolver,
		validate: validator.New(),
		log:      log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	company, ok := h.companyForSignup(w, r)
	if !ok {
		return
	}
	var body struct {
		Name     string `json:"name" validate:"max=200"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email or password length")
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		CompanyID: company.ID,
		Name:      body.Name,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", company.ID.String(), "", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.signup", company.ID.String(), result.User.ID.String(), true, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":         toUserDTO(result.User),
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Signals first: extraction re-buffers the body, the decode below
	// drains it for good.
	signals := middleware.ExtractSignals(r)
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email or password length")
		return
	}
	company, err := h.resolver.CompanyForLogin(r.Context(), signals, email)
	if err != nil {
		AuditLog(h.log, r, "user.login", "", "", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		CompanyID: company.ID,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", company.ID.String(), "", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.login", company.ID.String(), result.User.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":         toUserDTO(result.User),
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{
		RefreshToken: TruncateRefreshToken(body.RefreshToken),
	})
	if err != nil {
		AuditLog(h.log, r, "token.refresh", "", "", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "token.refresh", "", "", true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// companyForSignup picks the tenant for a signup: the resolved one when a
// signal matched, else the deployment's fallback company.
func (h *AuthHandler) companyForSignup(w http.ResponseWriter, r *http.Request) (*domain.Company, bool) {
	if rc := middleware.ResolvedFromContext(r.Context()); rc.Resolved() {
		return rc.Company, true
	}
	company, err := h.resolver.Fallback(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fallback company lookup failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return nil, false
	}
	if company == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "no company could be resolved")
		return nil, false
	}
	return company, true
}
