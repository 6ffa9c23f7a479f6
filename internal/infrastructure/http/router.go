package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/handlers"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Boards    *handlers.BoardsHandler
	Posts     *handlers.PostsHandler
	Comments  *handlers.CommentsHandler
	Votes     *handlers.VotesHandler
	Companies *handlers.CompaniesHandler

	Tenant           *middleware.TenantResolver
	Log              zerolog.Logger
	APIVersion       string
	Secure           func(http.Handler) http.Handler
	CORS             func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler
	CompanyRateLimit func(http.Handler) http.Handler
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// First-party dashboard auth. The tenant is optional here: signup falls
	// back to the deployment's demo company and login has its own resolution.
	r.Route("/auth", func(r chi.Router) {
		r.Use(cfg.Tenant.Optional)
		r.Post("/signup", cfg.Auth.Signup)
		r.Post("/login", cfg.Auth.Login)
		r.Post("/refresh", cfg.Auth.Refresh)
	})

	r.Route("/companies", func(r chi.Router) {
		// Tenant provisioning is open so a fresh deployment can bootstrap its
		// first company. The response carries the only copy of the plaintext
		// API key.
		r.Post("/create", cfg.Companies.Create)
		r.Group(func(r chi.Router) {
			r.Use(cfg.Tenant.Require)
			r.Use(middleware.RequireAdmin)
			r.Post("/regenerate-key", cfg.Companies.RegenerateKey)
		})
	})

	// The third-party API: v1 pages by skip/hasMore only, v2 additionally
	// honors cursor paging. Everything else is identical between the two.
	r.Route("/api/v1", func(r chi.Router) { mountAPI(r, cfg, false) })
	r.Route("/api/v2", func(r chi.Router) { mountAPI(r, cfg, true) })

	return r
}

func mountAPI(r chi.Router, cfg RouterConfig, cursorAllowed bool) {
	// Comment creation tolerates an unresolved tenant: the company is then
	// derived from the comment's owning post.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Tenant.Optional)
		if cfg.CompanyRateLimit != nil {
			r.Use(cfg.CompanyRateLimit)
		}
		r.Post("/comments/create", cfg.Comments.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(cfg.Tenant.Require)
		if cfg.CompanyRateLimit != nil {
			r.Use(cfg.CompanyRateLimit)
		}
		r.Post("/boards/list", cfg.Boards.List(cursorAllowed))
		r.Post("/boards/retrieve", cfg.Boards.Retrieve)
		r.Post("/boards/create", cfg.Boards.Create)
		r.Post("/posts/list", cfg.Posts.List(cursorAllowed))
		r.Post("/posts/retrieve", cfg.Posts.Retrieve)
		r.Post("/posts/create", cfg.Posts.Create)
		r.Post("/comments/list", cfg.Comments.List(cursorAllowed))
		r.Post("/votes/list", cfg.Votes.List(cursorAllowed))
		r.Post("/votes/create", cfg.Votes.Create)
		r.Post("/votes/delete", cfg.Votes.Delete)
	})
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
