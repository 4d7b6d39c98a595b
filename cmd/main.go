package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytmb/internal/services"
	"github.com/desertthunder/ytmb/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	ytmService := services.NewYTMService(config.Proxy.BaseURL)
	apiService := services.NewAPIService(config.Proxy.BaseURL, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: ytmService,
		API:     apiService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytmb",
		Usage:    "Browse and manage your YouTube Music library",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
