package tenant

import (
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/domain"
)

// Method records which signal resolved the tenant.
type Method string

const (
	MethodBearer    Method = "bearer"
	MethodAPIKey    Method = "api_key"
	MethodSubdomain Method = "subdomain"
	MethodNone      Method = "none"
)

// Context is the resolved request context: the tenant a request acts on
// behalf of and, when a bearer token resolved it, the authenticated user.
// It is built fresh per request and never shared across requests.
type Context struct {
	Company *domain.Company
	User    *domain.User // nil unless resolved via bearer token
	Method  Method
}

// Resolved reports whether a tenant was found.
func (c *Context) Resolved() bool { return c != nil && c.Company != nil }

// Authenticated reports whether a principal was resolved alongside the tenant.
func (c *Context) Authenticated() bool { return c != nil && c.User != nil }
