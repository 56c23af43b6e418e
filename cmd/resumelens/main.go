package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resumelens/internal/cli"
	"resumelens/internal/config"
	"resumelens/internal/errors"
)

func main() {
	// Interrupt and SIGTERM cancel the context so long-running commands
	// (the server in particular) shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting resumelens application",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel)

	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Application execution failed")
		os.Exit(1)
	}
}
