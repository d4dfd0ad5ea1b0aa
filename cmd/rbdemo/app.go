package main

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xrbtree/demo"
	"github.com/benz9527/xrbtree/observability"
	"github.com/benz9527/xrbtree/xlog"
)

const appName = "rbdemo"

// The demo tables share the stdout, so the logger is quiet (WARN)
// unless XLOG_LVL says otherwise.
func newLogger() xlog.XLogger {
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerContextFieldExtract(demo.RoundContextField, "roundID"),
	}
	if _, ok := os.LookupEnv("XLOG_LVL"); !ok {
		opts = append(opts, xlog.WithXLoggerLevel(xlog.LogLevelWarn))
	}
	return xlog.NewXLogger(opts...)
}

func newConfig() (*demo.Config, error) {
	return demo.NewConfig(demo.WithEnv())
}

// The metrics are flushed into the output after the tables, when
// the app stops.
func newMeterProvider(lc fx.Lifecycle, cfg *demo.Config, out io.Writer) (metric.MeterProvider, error) {
	mp, shutdown, err := observability.NewMeterProvider(cfg.Metrics, observability.WithMetricsWriter(out))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return observability.StartRuntimeStats(mp, appName)
		},
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return mp, nil
}

func newTreeStats(mp metric.MeterProvider) *observability.TreeStats {
	return observability.NewTreeStats(mp, appName)
}

func setMaxProcs(lc fx.Lifecycle, logger xlog.XLogger) error {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.DebugLevel, format, args...)
	}))
	if err != nil {
		return err
	}
	lc.Append(fx.StopHook(undo))
	return nil
}

func appOptions(out io.Writer, targets ...any) fx.Option {
	return fx.Options(
		fx.Provide(
			func() io.Writer { return out },
			newLogger,
			newConfig,
			newMeterProvider,
			newTreeStats,
			demo.NewRunner,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(setMaxProcs),
		fx.Populate(targets...),
	)
}

func run(ctx context.Context, out io.Writer) error {
	var (
		logger xlog.XLogger
		runner *demo.Runner
	)
	app := fx.New(appOptions(out, &logger, &runner))
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := runner.Run(ctx)
	if runErr != nil {
		logger.ErrorStack(runErr, "demo rounds failed")
	}

	stopCtx, stopCancel := context.WithTimeout(ctx, app.StopTimeout())
	defer stopCancel()
	return multierr.Append(runErr, app.Stop(stopCtx))
}
