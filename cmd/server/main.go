// Package main is the entry point for the magazine API server.
//
// main only reads configuration, builds the logger, and hands both to
// internal/server. Everything else lives in internal/ so it can be tested
// without starting a process.
package main

import (
	"log/slog"
	"os"

	"github.com/mozafut/revista/internal/config"
	"github.com/mozafut/revista/internal/server"
)

func main() {
	// === 1. CONFIGURATION ===
	// .env (if present) then the process environment; see internal/config
	// for every variable and its default.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	// Text output for humans. DEBUG=true or APP_ENV=development turns on
	// debug lines, e.g. updates that matched no row.
	level := slog.LevelInfo
	if cfg.DebugEnabled() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// === 3. SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
