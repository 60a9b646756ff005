package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/auction-house/internal/config"
	"github.com/yukikurage/auction-house/internal/database"
	"github.com/yukikurage/auction-house/internal/logger"
	"github.com/yukikurage/auction-house/internal/middleware"
	"github.com/yukikurage/auction-house/internal/ratelimit"
	"github.com/yukikurage/auction-house/internal/repository"
	"github.com/yukikurage/auction-house/internal/server"
	"github.com/yukikurage/auction-house/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// Load configuration
	cfg := config.Load(*envFile)

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal("Invalid log level", map[string]any{"level": cfg.LogLevel, "error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logger.Fatal("Server stopped with error", map[string]any{"error": err.Error()})
	}
}

// run serves until ctx is cancelled or the listener fails. Every resource it
// opens is released before it returns.
func run(ctx context.Context, cfg *config.Config) error {
	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", map[string]any{"error": err.Error()})
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		return err
	}

	var loginLimiter middleware.Limiter
	if cfg.LoginRateLimitPerMinute > 0 {
		limiter, err := ratelimit.NewFixedWindowLimiter(cfg.RedisAddr(), cfg.RedisPassword, "", cfg.LoginRateLimitPerMinute, time.Minute)
		if err != nil {
			return fmt.Errorf("failed to create login rate limiter: %w", err)
		}
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Warn("Failed to close rate limiter", map[string]any{"error": err.Error()})
			}
		}()
		loginLimiter = limiter
	}

	authService := services.NewAuthService(repository.NewUserRepository(db))
	auctionService := services.NewAuctionService(repository.NewAuctionRepository(db), services.AuctionServiceConfig{
		RejectExpiredBids: cfg.RejectExpiredBids,
	})

	router := server.NewRouter(server.Dependencies{
		AuthService:    authService,
		AuctionService: auctionService,
		SessionStore:   store,
		LoginLimiter:   loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", map[string]any{
			"addr":      srv.Addr,
			"db_driver": cfg.DBDriver,
			"sessions":  cfg.SessionStore,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
