// Package cli holds the budgety subcommands and the initialization they
// share.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"budgety/internal/config"
	"budgety/internal/log"
)

// LoadConfig loads the optional .env file, then parses and validates the
// environment.
func LoadConfig() (*config.Config, error) {
	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from the configuration, writing to
// out, and makes it the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) *log.Logger {
	lc := log.ConfigFor(cfg.LogLevel, cfg.AppEnv)
	lc.Output = out
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
