package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/partytable/internal/server"
	"github.com/lox/partytable/internal/session"
)

// ServeCmd runs the websocket server.
type ServeCmd struct {
	Config string `help:"Path to HCL config file" default:"partytable.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (cmd *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := log.InfoLevel
	if parsed, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
		level = parsed
	}
	if cmd.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.NewServer(logger, server.Options{
		Store:       store,
		SpinDelayMs: cfg.Wheel.SpinDelayMs,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, cfg.ListenAddress())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func openStore(cfg *server.Config) (session.Store, error) {
	switch cfg.Server.Store {
	case "sqlite":
		return session.NewSQLiteStore(filepath.Join(cfg.Server.DataDir, "sessions.db"))
	default:
		return session.NewFileStore(cfg.Server.DataDir)
	}
}
