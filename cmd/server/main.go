package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/finledger/finledger/internal/api"
	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/config"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/storage/sqlite"
	"github.com/finledger/finledger/pkg/logging"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	server := api.NewServer(store, authenticator, tokens, cfg.AllowNegativeAmounts)
	mux := server.Router()
	handler := middleware.Logging(middleware.Metrics(mux)(mux))

	// h2c enables HTTP/2 without TLS for clients behind a terminating proxy.
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
