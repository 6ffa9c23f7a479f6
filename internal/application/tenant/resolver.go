package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/company"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
	domerrors "github.com/sparrowapp-dev/openfeedback-sub000/internal/domain/errors"
)

// Mode controls what happens when no signal resolves a tenant.
type Mode int

const (
	// ModeRequired fails with ErrUnauthenticated when nothing resolves.
	ModeRequired Mode = iota
	// ModeOptional never fails; the caller gets an empty Context and applies
	// its own per-endpoint fallback or rejects.
	ModeOptional
)

// Signals are the raw credentials extracted from one inbound request.
// Zero values mean the signal is absent.
type Signals struct {
	BearerToken string // Authorization: Bearer <token>
	APIKey      string // apiKey body field or query parameter
	Host        string // Host header, used for subdomain derivation
	// SubdomainOverride is an explicit subdomain from body, query or the
	// X-Company-Subdomain header; it beats the Host-derived value.
	SubdomainOverride string
}

// Resolver maps a request's credential signals to a tenant and, when a
// bearer token is present, an authenticated user. Precedence is fixed:
// bearer token, then API key, then subdomain. Each signal is skipped when
// absent or invalid; storage faults propagate unmodified.
type Resolver struct {
	companies ports.CompanyRepository
	users     ports.UserRepository
	creds     *company.CredentialStore
	issuer    ports.TokenIssuer
	// demoSubdomain designates the fallback tenant for endpoints that allow
	// one; empty means "oldest company".
	demoSubdomain string
	// devLoginEnabled gates the localhost email-only login shortcut. Off by
	// default; hostname heuristics alone are not enough to reach it.
	devLoginEnabled bool
}

// NewResolver builds a resolver over the given collaborators.
func NewResolver(companies ports.CompanyRepository, users ports.UserRepository, creds *company.CredentialStore, issuer ports.TokenIssuer, demoSubdomain string, devLoginEnabled bool) *Resolver {
	return &Resolver{
		companies:       companies,
		users:           users,
		creds:           creds,
		issuer:          issuer,
		demoSubdomain:   strings.ToLower(demoSubdomain),
		devLoginEnabled: devLoginEnabled,
	}
}

// Resolve applies the signal precedence and returns the resolved context.
//
// In ModeRequired a request with no usable signal fails with
// ErrUnauthenticated; the message distinguishes "nothing provided" from
// "provided but invalid" without revealing which tenants exist. In
// ModeOptional the returned context simply has no company.
func (r *Resolver) Resolve(ctx context.Context, sig Signals, mode Mode) (*Context, error) {
	sawSignal := false

	if sig.BearerToken != "" {
		sawSignal = true
		if rc, err := r.resolveBearer(ctx, sig.BearerToken); err != nil {
			return nil, err
		} else if rc != nil {
			return rc, nil
		}
	}

	if sig.APIKey != "" {
		sawSignal = true
		c, err := r.creds.VerifyAPIKey(ctx, sig.APIKey)
		if err != nil && !errors.Is(err, domerrors.ErrCompanyNotFound) {
			return nil, err
		}
		if c != nil {
			return &Context{Company: c, Method: MethodAPIKey}, nil
		}
	}

	if sub := r.candidateSubdomain(sig); sub != "" {
		sawSignal = true
		c, err := r.companies.GetBySubdomain(ctx, sub)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return &Context{Company: c, Method: MethodSubdomain}, nil
		}
	}

	if mode == ModeOptional {
		return &Context{Method: MethodNone}, nil
	}
	if sawSignal {
		return nil, fmt.Errorf("%w: credentials were provided but none were valid", domerrors.ErrUnauthenticated)
	}
	return nil, fmt.Errorf("%w: no API key, token or subdomain provided", domerrors.ErrUnauthenticated)
}

// resolveBearer verifies the token and loads both tenant and user. An
// invalid token returns (nil, nil) so resolution falls through to the next
// signal; only storage faults are returned.
func (r *Resolver) resolveBearer(ctx context.Context, token string) (*Context, error) {
	claims, err := r.issuer.VerifyToken(token)
	if err != nil || claims.TokenType != ports.TokenTypeAccess {
		return nil, nil
	}
	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return nil, nil
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil
	}
	c, err := r.companies.GetByID(ctx, domain.NewCompanyID(companyID))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	u, err := r.users.GetByID(ctx, c.ID, domain.NewUserID(userID))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &Context{Company: c, User: u, Method: MethodBearer}, nil
}

func (r *Resolver) candidateSubdomain(sig Signals) string {
	if sig.SubdomainOverride != "" {
		return strings.ToLower(strings.TrimSpace(sig.SubdomainOverride))
	}
	return SubdomainFromHost(sig.Host)
}

// Fallback returns the designated demo company, or the oldest company when
// none is designated. It exists so single-tenant and local-development
// deployments work without explicit credentials; callers must not use it for
// destructive or tenant-sensitive writes.
func (r *Resolver) Fallback(ctx context.Context) (*domain.Company, error) {
	if r.demoSubdomain != "" {
		c, err := r.companies.GetBySubdomain(ctx, r.demoSubdomain)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	return r.companies.First(ctx)
}

// CompanyForLogin resolves the tenant for the login operation only.
//
// Normal signal resolution applies first. When nothing resolves, the host is
// local and the dev-login flag is set, the tenant may be located by looking
// the email up across all companies. This shortcut exists solely to keep
// local testing ergonomic; it is confined to login and is unreachable unless
// explicitly enabled in configuration.
func (r *Resolver) CompanyForLogin(ctx context.Context, sig Signals, email string) (*domain.Company, error) {
	rc, err := r.Resolve(ctx, sig, ModeOptional)
	if err != nil {
		return nil, err
	}
	if rc.Resolved() {
		return rc.Company, nil
	}
	if r.devLoginEnabled && isLocalHost(sig.Host) && sig.SubdomainOverride == "" && email != "" {
		u, err := r.users.GetByEmailAnyCompany(ctx, email)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return r.companies.GetByID(ctx, u.CompanyID)
		}
	}
	return nil, fmt.Errorf("%w: no company could be resolved for login", domerrors.ErrUnauthenticated)
}
