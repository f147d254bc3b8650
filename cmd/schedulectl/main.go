package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/app"
	"github.com/noah-isme/timp-schedule-api/internal/cli"
	"github.com/noah-isme/timp-schedule-api/pkg/config"
	"github.com/noah-isme/timp-schedule-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Keep the terminal clean unless LOG_LEVEL asks for more.
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.Log.Level = "error"
	}
	cfg.Log.Format = "console"
	logr, err := logger.New(cfg)
	if err != nil {
		logr = zap.NewNop()
	}
	defer logr.Sync() //nolint:errcheck

	services, err := app.Build(cfg, logr)
	if err != nil {
		return fmt.Errorf("wiring services: %w", err)
	}
	defer services.Close() //nolint:errcheck

	root := cli.NewRootCmd(&cli.App{
		Centers:  services.Centers,
		Schedule: services.Schedule,
		Timeout:  cfg.Timp.Timeout * 4,
	})
	return root.Execute()
}
