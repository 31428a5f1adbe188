// Package main is the entry point for the flow map painter.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Hilthkess/flow-map-painter/internal/app"
	"github.com/Hilthkess/flow-map-painter/internal/config"
	"github.com/Hilthkess/flow-map-painter/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Flow Map Painter ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("paint loop error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
