package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"budgety/internal/app"
	"budgety/internal/config"
	apphttp "budgety/internal/http"
	"budgety/internal/ledger"
	"budgety/internal/log"
)

type ServeCmd struct {
	addr string
}

func (*ServeCmd) Name() string     { return "serve" }
func (*ServeCmd) Synopsis() string { return "serve the budget page over HTTP" }
func (*ServeCmd) Usage() string {
	return `budgety serve [-addr <host:port>]

  Starts the web page. Configuration comes from the environment (PORT,
  CURRENCY, LOG_LEVEL, APP_ENV, timeouts) and an optional .env file.
  The server stops gracefully on SIGINT or SIGTERM.
`
}

func (c *ServeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides PORT.")
}

func (c *ServeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	logger := SetupLogger(cfg, os.Stdout)

	addr := cfg.Addr()
	if c.addr != "" {
		addr = c.addr
	}

	ctx, stop := SignalContext(ctx)
	defer stop()

	if err := Serve(ctx, cfg, addr, logger); err != nil {
		logger.Error("Server error", log.FieldError, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Serve runs the web server until ctx is cancelled, then shuts it down
// within the configured timeout.
func Serve(ctx context.Context, cfg *config.Config, addr string, logger *log.Logger) error {
	ctrl := app.NewController(ledger.New(), logger)
	srv := apphttp.NewServer(addr, ctrl, cfg.Currency, logger, apphttp.Options{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting budgety server",
			"addr", addr,
			"currency", cfg.Currency,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Server shutdown error", log.FieldError, err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
