// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/localuser/lib/config"
	"github.com/bureau-foundation/localuser/lib/service"
	"github.com/bureau-foundation/localuser/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		socketPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "path to YAML configuration file (default: $LOCALUSER_CONFIG)")
	flag.StringVar(&socketPath, "socket", "", "Unix socket path (overrides configuration)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("localuser-service %s\n", version.Info())
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if socketPath != "" {
		cfg.SocketPath = socketPath
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookup := &lookupService{
		logger:      logger,
		uidOverride: cfg.UID,
	}

	server := service.NewSocketServer(cfg.SocketPath, logger)
	lookup.register(server)

	logger.Info("localuser lookup service starting",
		"socket", cfg.SocketPath,
		"version", version.Info(),
	)
	return server.Serve(ctx)
}

// loadConfig resolves the configuration source: an explicit --config
// flag wins over the LOCALUSER_CONFIG environment variable.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// logLevel maps a validated config log level to its slog value.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
