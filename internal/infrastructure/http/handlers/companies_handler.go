package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/company"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
)

type CompaniesHandler struct {
	create   *company.CreateCompany
	creds    *company.CredentialStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewCompaniesHandler(create *company.CreateCompany, creds *company.CredentialStore, log zerolog.Logger) *CompaniesHandler {
	return &CompaniesHandler{create: create, creds: creds, validate: validator.New(), log: log}
}

// Create provisions a tenant. The plaintext API key appears in this response
// and nowhere else; only its hash is stored.
func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name           string   `json:"name" validate:"required,max=200"`
		Subdomain      string   `json:"subdomain" validate:"max=63"`
		AllowedDomains []string `json:"allowedDomains" validate:"max=20"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.create.Execute(r.Context(), company.CreateCompanyInput{
		Name:           body.Name,
		Subdomain:      body.Subdomain,
		AllowedDomains: body.AllowedDomains,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	h.log.Info().Str("company_id", result.Company.ID.String()).Str("subdomain", result.Company.Subdomain).Msg("company created")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"company": toCompanyDTO(result.Company),
		"apiKey":  result.APIKey,
	})
}

// RegenerateKey rotates the resolved company's API key. The previous key
// stops verifying immediately. Mounted behind admin-only middleware.
func (h *CompaniesHandler) RegenerateKey(w http.ResponseWriter, r *http.Request) {
	rc := middleware.ResolvedFromContext(r.Context())
	plainKey, err := h.creds.RegenerateAPIKey(r.Context(), rc.Company.ID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	h.log.Info().Str("company_id", rc.Company.ID.String()).Str("user_id", rc.User.ID.String()).Msg("api key regenerated")
	writeJSON(w, http.StatusOK, map[string]string{"apiKey": plainKey})
}

type CompanyDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Subdomain      string   `json:"subdomain,omitempty"`
	AllowedDomains []string `json:"allowedDomains,omitempty"`
}

func toCompanyDTO(c *domain.Company) CompanyDTO {
	return CompanyDTO{
		ID:             c.ID.String(),
		Name:           c.Name,
		Subdomain:      c.Subdomain,
		AllowedDomains: c.AllowedDomains,
	}
}
