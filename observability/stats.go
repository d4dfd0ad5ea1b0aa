package observability

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const scopePrefix = "xrbtree/"

func scopeName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString(scopePrefix)
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

type TreeOp string

const (
	OpInsert TreeOp = "insert"
	OpSearch TreeOp = "search"
	OpDelete TreeOp = "delete"
)

// TreeStats records the tree operations issued by the demo rounds.
// A nil *TreeStats records nothing.
type TreeStats struct {
	ops      metric.Int64Counter
	searches metric.Int64Counter
	size     metric.Int64Histogram
	rounds   metric.Float64Histogram
}

func NewTreeStats(mp metric.MeterProvider, name string) *TreeStats {
	meter := mp.Meter(scopeName(name))
	return &TreeStats{
		ops: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.ops",
			metric.WithDescription("The tree operations grouped by op."),
		)),
		searches: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.searches",
			metric.WithDescription("The tree searches grouped by found or not."),
		)),
		size: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"rbtree.size",
			metric.WithDescription("The tree size at the end of each round."),
		)),
		rounds: lo.Must[metric.Float64Histogram](meter.Float64Histogram(
			"rbtree.round.duration",
			metric.WithDescription("The round cost."),
			metric.WithUnit("ms"),
		)),
	}
}

func (stats *TreeStats) RecordOp(ctx context.Context, op TreeOp, n int64) {
	if stats == nil || n <= 0 {
		return
	}
	stats.ops.Add(ctx, n, metric.WithAttributes(attribute.String("op", string(op))))
}

func (stats *TreeStats) RecordSearch(ctx context.Context, found bool) {
	if stats == nil {
		return
	}
	stats.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("op", string(OpSearch))))
	stats.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("found", found)))
}

func (stats *TreeStats) RecordRound(ctx context.Context, size int64, cost time.Duration) {
	if stats == nil {
		return
	}
	stats.size.Record(ctx, size)
	stats.rounds.Record(ctx, float64(cost)/float64(time.Millisecond))
}

// StartRuntimeStats observes the goroutines and the runtime stats
// (memory, gc) into the provider.
func StartRuntimeStats(mp metric.MeterProvider, name string) error {
	meter := mp.Meter(
		scopeName(name),
		metric.WithInstrumentationVersion(otelruntime.Version()),
	)
	_ = lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
		"app.core.goroutines",
		metric.WithDescription(`The application goroutines' info.`),
		metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
			ob.Observe(int64(runtime.NumGoroutine()))
			return nil
		}),
	))
	_ = lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
		"app.core.processes",
		metric.WithDescription(`The application processes' info.`),
		metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
			ob.Observe(int64(runtime.GOMAXPROCS(0)))
			return nil
		}),
	))
	return otelruntime.Start(
		otelruntime.WithMeterProvider(mp),
		otelruntime.WithMinimumReadMemStatsInterval(time.Second),
	)
}
