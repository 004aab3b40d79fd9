package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/tasklist/config"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/logging/observes"
	"github.com/ncobase/tasklist/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/ncobase/tasklist/data/all"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the task persistence endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := initServer(config.Path(opts.configFile))
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}
			defer cleanup()

			shutdown, err := setupObserves(ctx, app.Config, app.Logger)
			if err != nil {
				return err
			}
			defer shutdown()

			if app.Config.Viper != nil && app.Config.Viper.ConfigFileUsed() != "" {
				config.Watch(func(c *config.Config) {
					app.Logger.SetLevel(logrus.Level(c.Logger.Level))
					app.Logger.Info(ctx, "config reloaded", "file", c.Viper.ConfigFileUsed())
				})
			}

			app.Logger.Info(ctx, "tasklist starting",
				"version", version.Version,
				"driver", app.Data.Driver,
				"addr", app.Config.Server.Addr(),
			)
			return app.Server.Run(ctx)
		},
	}
}

// setupObserves starts sentry and the tracer when configured and returns a
// func that flushes both.
func setupObserves(ctx context.Context, cfg *config.Config, l *logger.Logger) (func(), error) {
	info := version.GetVersionInfo()
	l.SetVersion(info.Version)

	if cfg.Observes == nil {
		return func() {}, nil
	}

	sentryEnabled := false
	if s := cfg.Observes.Sentry; s != nil && s.Endpoint != "" {
		release := s.Release
		if release == "" {
			release = info.Version
		}
		if err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        cfg.AppName,
			Release:     release,
			Environment: s.Environment,
			SampleRate:  s.SampleRate,
		}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		l.AddHook(logger.NewSentryHook(logrus.Level(cfg.Logger.SentryLevel)))
		sentryEnabled = true
	}

	traceShutdown := observes.ShutdownFunc(func(context.Context) error { return nil })
	if t := cfg.Observes.Tracer; t != nil && t.Endpoint != "" {
		serviceVersion := t.ServiceVersion
		if serviceVersion == "" {
			serviceVersion = info.Version
		}
		var err error
		traceShutdown, err = observes.NewTracer(ctx, &observes.TracerOption{
			URL:                t.Endpoint,
			Name:               t.ServiceName,
			Version:            serviceVersion,
			Branch:             info.Branch,
			Revision:           info.Revision,
			Environment:        t.Environment,
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
			Insecure:           t.Insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		l.Info(ctx, "tracing enabled", "endpoint", t.Endpoint)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traceShutdown(shutdownCtx); err != nil {
			l.Error(shutdownCtx, "failed to shut down tracer", "error", err)
		}
		if sentryEnabled {
			sentry.Flush(2 * time.Second)
		}
	}, nil
}
