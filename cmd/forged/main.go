// Command forged serves the sprite engine and drop catalog over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/api"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/config"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/dropscript"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/observe"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forged: %v\n", err)
		os.Exit(1)
	}

	logger := observe.NewLogger("forged", cfg.LogLevel)

	opts := api.Options{
		AuthToken: cfg.BearerToken,
		FrameSize: cfg.FrameSize,
		Workers:   cfg.Workers,
	}
	if cfg.PolicyScript != "" {
		src, err := os.ReadFile(cfg.PolicyScript)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.PolicyScript).Msg("failed to read policy script")
		}
		// Compile once at boot so a broken script fails here, not on the
		// first drop.
		if _, err := dropscript.Compile(string(src)); err != nil {
			logger.Fatal().Err(err).Str("path", cfg.PolicyScript).Msg("policy script does not compile")
		}
		opts.PolicyScript = string(src)
	}

	db, err := store.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open catalog database")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate catalog database")
	}

	server := api.NewServer(db, logger, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, logger, cfg.ListenAddr, server.Routes()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func serve(ctx context.Context, logger zerolog.Logger, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	serveErr := make(chan error, 1)
	logger.Info().Str("addr", addr).Str("version", api.EngineVersion).Msg("forged listening")
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info().Msg("forged stopped")
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
