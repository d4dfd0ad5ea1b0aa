package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/multierr"

	"github.com/benz9527/xrbtree/lib/infra"
)

type MetricsExporterType string

const (
	NoneExporter       MetricsExporterType = "none"
	StdoutExporter     MetricsExporterType = "stdout"
	PrometheusExporter MetricsExporterType = "prometheus"
)

func ParseMetricsExporterType(typ string) (MetricsExporterType, error) {
	switch t := MetricsExporterType(strings.ToLower(strings.TrimSpace(typ))); t {
	case "":
		return NoneExporter, nil
	case NoneExporter, StdoutExporter, PrometheusExporter:
		return t, nil
	}
	return NoneExporter, infra.NewErrorStack("[observability] unknown metrics exporter " + typ)
}

// ShutdownFunc flushes the collected metrics and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

type metricsCfg struct {
	writer   io.Writer
	interval time.Duration
	timeout  time.Duration
}

type MetricsOption func(*metricsCfg)

func WithMetricsWriter(w io.Writer) MetricsOption {
	return func(cfg *metricsCfg) {
		if w != nil {
			cfg.writer = w
		}
	}
}

func WithMetricsInterval(interval, timeout time.Duration) MetricsOption {
	return func(cfg *metricsCfg) {
		if interval > 0 {
			cfg.interval = interval
		}
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// NewMeterProvider builds the provider of the exporter type. The
// none type returns a noop provider, nothing is collected.
func NewMeterProvider(typ MetricsExporterType, opts ...MetricsOption) (metric.MeterProvider, ShutdownFunc, error) {
	cfg := &metricsCfg{
		writer:   os.Stdout,
		interval: time.Minute,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	switch typ {
	case StdoutExporter:
		return newConsoleMetricsExporter(cfg)
	case PrometheusExporter:
		return newPrometheusMetricsExporter(cfg)
	case NoneExporter, "":
		return noop.NewMeterProvider(), func(ctx context.Context) error { return nil }, nil
	}
	return nil, nil, infra.NewErrorStack("[observability] unknown metrics exporter " + string(typ))
}

// Serves for test/dev environment. The metrics are printed at least
// once, when the provider is shut down.
func newConsoleMetricsExporter(cfg *metricsCfg) (metric.MeterProvider, ShutdownFunc, error) {
	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(cfg.writer),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, infra.WrapErrorStack(err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(cfg.interval),
		sdkmetric.WithTimeout(cfg.timeout),
	)))
	return mp, mp.Shutdown, nil
}

// The process is short-lived, so the prometheus registry is dumped
// in the text exposition format on shutdown instead of being scraped.
func newPrometheusMetricsExporter(cfg *metricsCfg) (metric.MeterProvider, ShutdownFunc, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, infra.WrapErrorStack(err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	shutdown := func(ctx context.Context) error {
		mfs, err := registry.Gather()
		if err != nil {
			return multierr.Append(infra.WrapErrorStack(err), mp.Shutdown(ctx))
		}
		for _, mf := range mfs {
			if _, err = expfmt.MetricFamilyToText(cfg.writer, mf); err != nil {
				break
			}
		}
		return multierr.Append(err, mp.Shutdown(ctx))
	}
	return mp, shutdown, nil
}
