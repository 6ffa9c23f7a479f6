package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/auth"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/company"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/feedback"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/ports"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/tenant"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/config"
	infraauth "github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/auth"
	httprouter "github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/handlers"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/http/middleware"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/lockout"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/notify"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/db"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/persistence/postgres"
	"github.com/sparrowapp-dev/openfeedback-sub000/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	queries := db.New(pool)
	companyRepo := postgres.NewCompanyRepository(queries)
	userRepo := postgres.NewUserRepository(queries)
	boardRepo := postgres.NewBoardRepository(queries)
	postRepo := postgres.NewPostRepository(queries)
	commentRepo := postgres.NewCommentRepository(queries)
	voteRepo := postgres.NewVoteRepository(queries)

	var notifier ports.Notifier
	var worker *notify.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqNotifier := notify.NewAsynqNotifier(asynqOpt, log)
		defer asynqNotifier.Close()
		notifier = asynqNotifier
		worker = notify.NewWorker(asynqOpt, cfg.Notify.WebhookURL, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("notification worker stopped")
			}
		}()
	} else {
		notifier = notify.NewNoopNotifier()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	privateKey := loadSigningKey(cfg, log)
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	creds := company.NewCredentialStore(companyRepo, hasher)
	resolver := tenant.NewResolver(companyRepo, userRepo, creds, issuer, cfg.Tenant.DemoSubdomain, cfg.Tenant.DevLoginEnabled)
	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)

	signupUC := auth.NewSignup(userRepo, hasher, issuer)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, lockoutStore)
	refreshUC := auth.NewRefresh(userRepo, issuer)
	createCompanyUC := company.NewCreateCompany(companyRepo, creds)
	createBoardUC := feedback.NewCreateBoard(boardRepo)
	createPostUC := feedback.NewCreatePost(postRepo, boardRepo, userRepo, notifier, log)
	createCommentUC := feedback.NewCreateComment(commentRepo, postRepo, userRepo, notifier, log)
	votesUC := feedback.NewVotes(voteRepo, postRepo, userRepo, notifier, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	companyLimit, err := middleware.NewCompanyRateLimiter(cfg.RateLimit.PerCompany, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("create company rate limiter")
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		Auth:      handlers.NewAuthHandler(signupUC, loginUC, refreshUC, resolver, log),
		Health:    healthHandler,
		Boards:    handlers.NewBoardsHandler(boardRepo, createBoardUC, log),
		Posts:     handlers.NewPostsHandler(postRepo, createPostUC, log),
		Comments:  handlers.NewCommentsHandler(commentRepo, createCommentUC, log),
		Votes:     handlers.NewVotesHandler(voteRepo, votesUC, log),
		Companies: handlers.NewCompaniesHandler(createCompanyUC, creds, log),

		Tenant:           middleware.NewTenantResolver(resolver),
		Log:              log,
		APIVersion:       "2",
		Secure:           middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:             middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:      ipLimit,
		CompanyRateLimit: companyLimit,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

// loadSigningKey reads the configured RSA key or, in development, generates
// an ephemeral one so the service starts without setup. Tokens signed with an
// ephemeral key do not survive a restart.
func loadSigningKey(cfg *config.Config, log zerolog.Logger) *rsa.PrivateKey {
	if cfg.JWT.PrivateKeyPath != "" {
		pemBytes, err := cfg.LoadJWTPrivateKey()
		if err != nil {
			log.Fatal().Err(err).Msg("load JWT private key")
		}
		key, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
		if err != nil {
			log.Fatal().Err(err).Msg("parse JWT private key")
		}
		return key
	}
	if !cfg.Secure.IsDevelopment {
		log.Fatal().Msg("JWT_PRIVATE_KEY_PATH is required outside development")
	}
	key, err := infraauth.GenerateEphemeralKey()
	if err != nil {
		log.Fatal().Err(err).Msg("generate ephemeral key")
	}
	log.Warn().Msg("using ephemeral JWT signing key; tokens will not survive restarts")
	return key
}
