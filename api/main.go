package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rogerio-castellano/finance-tracker/docs"
	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	"github.com/rogerio-castellano/finance-tracker/internal/config"
	"github.com/rogerio-castellano/finance-tracker/internal/db"
	api "github.com/rogerio-castellano/finance-tracker/internal/http"
	"github.com/rogerio-castellano/finance-tracker/internal/http/ban"
	"github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/finance-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
	"github.com/rogerio-castellano/finance-tracker/internal/logging"
	"github.com/rogerio-castellano/finance-tracker/internal/redissvc"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
)

// @title Finance Tracker API
// @version 1.0
// @description REST API for recording income and expenses, filtering and exporting them, and charting spending.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logging.New("info", false)
		l.Fatal().Err(err).Msg("could not load configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	redisService, err := redissvc.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("could not connect to redis")
	}
	defer redisService.Close()

	categories := repo.NewPostgresCategoryRepository(database)
	ledgerService := ledger.NewService(
		repo.NewPostgresTransactionRepository(database),
		categories,
		repo.NewPostgresAnalyticsRepository(database),
		ledger.WithLocation(cfg.Location()),
	)
	authService := auth.NewAuthService(
		repo.NewPostgresUserRepository(database),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		auth.NewRedisRevoker(redisService),
	)

	handlers.SetLedgerService(ledgerService)
	handlers.SetAuthService(authService)
	handlers.SetCategoryRepo(categories)
	handlers.SetBanGuard(ban.NewGuard(redisService, cfg.BanMaxFailures, cfg.BanWindow))
	handlers.SetListingLimit(cfg.DefaultLimit)

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartCleanupLoop(ctx)

	api.SetLogger(logger)
	api.SetRateLimiter(limiter)
	api.SetTrustedProxies(cfg.Proxies())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("timezone", cfg.Timezone).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
