// Command server runs the kudos backend HTTP service.
//
// Startup order:
//  1. Load .env (best-effort) and environment configuration
//  2. Configure zerolog (level, optional pretty console output)
//  3. Open the SQLite registry and run migrations
//  4. Initialize OpenTelemetry tracing (optional, incl. GORM instrumentation)
//  5. Build outbound clients (chat platform, moderation) and the Gin router
//  6. Serve with hardened timeouts; drain gracefully on SIGINT/SIGTERM
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-kudos-backend/internal/config"
	httpapi "github.com/tbourn/go-kudos-backend/internal/http"
	"github.com/tbourn/go-kudos-backend/internal/moderation"
	"github.com/tbourn/go-kudos-backend/internal/observability"
	"github.com/tbourn/go-kudos-backend/internal/platform"
	"github.com/tbourn/go-kudos-backend/internal/repo"
	"github.com/tbourn/go-kudos-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title          Kudos Backend API
// @version        1.0
// @description    Peer-recognition exchange service driven by chat-platform interaction events.
// @BasePath       /api/v1
func main() {
	// .env is optional; real deployments use the process environment.
	if !sysutil.IsTruthy(os.Getenv("SKIP_DOTENV")) {
		_ = godotenv.Load(sysutil.FirstNonEmpty(os.Getenv("ENV_FILE"), ".env"))
	}

	cfg := config.MustLoad()

	// Logging
	zerolog.TimeFieldFormat = time.RFC3339
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting kudos backend")

	// Registry store
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Tracing (no-op unless enabled)
	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OpenTelemetry")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Fatal().Err(err).Msg("failed to instrument GORM with OpenTelemetry")
		}
	}

	// Outbound collaborators
	chat := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.BotToken, cfg.Platform.Timeout)
	mod := moderation.NewClient(cfg.Moderation.Endpoint, cfg.Moderation.APIKey, cfg.Moderation.Timeout)

	// Router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, chat, mod, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("otel shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
