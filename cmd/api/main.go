package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"vid-catalog/internal/config"
	pgRepo "vid-catalog/internal/infra/adapter/persistence/postgres"
	"vid-catalog/internal/infra/db"
	"vid-catalog/internal/observability/tracing"
	"vid-catalog/internal/usecase/catalog"

	hhttp "vid-catalog/internal/handler/http"
	"vid-catalog/internal/handler/http/auth"
	"vid-catalog/internal/handler/http/middleware"
	"vid-catalog/internal/handler/http/requestid"
	"vid-catalog/internal/handler/http/video"
)

// Request bodies are bounded uniformly; bulk ingestion payloads are the
// largest legitimate requests.
const maxRequestBody = 10 << 20

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Setup()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, database, cfg)
	runServer(logger, handler, cfg)
}

// initLogger initializes the process-wide JSON logger.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupServer wires the routes and the middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.Config) http.Handler {
	svc := &catalog.Service{
		Repo:         pgRepo.NewVideoRepo(database),
		MaxBatchSize: cfg.MaxBatchSize,
	}

	guard := auth.NewGuard(cfg.APIKey, cfg.IsProduction())
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	mux := http.NewServeMux()
	video.Register(mux, svc, guard, limiter.Middleware, !cfg.IsProduction())

	mux.Handle("GET    /version", hhttp.VersionHandler(cfg.Version))
	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Version: cfg.Version})
	mux.Handle("GET    /ready", hhttp.ReadinessHandler(database))
	mux.Handle("GET    /live", hhttp.LivenessHandler())
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	// Outermost first: request ID, tracing, logging, metrics, CORS,
	// recovery, then the body cap and timeout around the routes.
	var handler http.Handler = mux
	handler = hhttp.Timeout(30 * time.Second)(handler)
	handler = hhttp.LimitRequestBody(maxRequestBody)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = middleware.CORS(middleware.DefaultCORSConfig())(handler)
	handler = hhttp.MetricsMiddleware(mux)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = tracing.Middleware(handler)
	handler = requestid.Middleware(handler)
	return handler
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
func runServer(logger *slog.Logger, handler http.Handler, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("mode", cfg.Mode),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
