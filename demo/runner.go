package demo

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xrbtree/lib/id"
	"github.com/benz9527/xrbtree/lib/infra"
	"github.com/benz9527/xrbtree/lib/tree"
	"github.com/benz9527/xrbtree/observability"
	"github.com/benz9527/xrbtree/xlog"
)

// RoundContextField is the context key of the round id, extract it
// into the log fields by xlog.WithXLoggerContextFieldExtract.
const RoundContextField = "round"

// Runner populates, searches, deletes and prints one tree per round.
// The rounds run on an ants pool, every round owns its tree.
type Runner struct {
	cfg     *Config
	logger  xlog.XLogger
	stats   *observability.TreeStats
	printer *Printer
	ids     id.Generator
}

// NewRunner prints into out. A nil stats records nothing.
func NewRunner(cfg *Config, logger xlog.XLogger, stats *observability.TreeStats, out io.Writer) (*Runner, error) {
	if cfg == nil || logger == nil || out == nil {
		return nil, infra.NewErrorStack("[demo] runner requires config, logger and output")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ids, err := id.MonotonicNonZeroID()
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:     cfg,
		logger:  logger,
		stats:   stats,
		printer: NewPrinter(out, cfg.NoColor),
		ids:     ids,
	}, nil
}

// Run executes all rounds and prints the reports by round order.
// The reports of the failed rounds are skipped.
func (r *Runner) Run(ctx context.Context) error {
	reports, err := r.RunRounds(ctx)
	for _, report := range reports {
		if report == nil {
			continue
		}
		if printErr := r.printer.Print(report, r.cfg.Rounds > 1); printErr != nil {
			err = multierr.Append(err, infra.WrapErrorStack(printErr))
			break
		}
	}
	return err
}

// RunRounds returns the reports indexed by the round order.
func (r *Runner) RunRounds(ctx context.Context) ([]*RoundReport, error) {
	pool, err := ants.NewPool(
		r.cfg.Workers,
		ants.WithPreAlloc(true),
		ants.WithLogger(xlog.NewAntsXLogger(r.logger)),
	)
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	defer pool.Release()

	seed := r.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var (
		wg      sync.WaitGroup
		reports = make([]*RoundReport, r.cfg.Rounds)
		errs    = make([]error, r.cfg.Rounds)
	)
	for i := 0; i < r.cfg.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = infra.WrapErrorStack(err)
			break
		}
		i, roundID := i, r.ids.Number()
		wg.Add(1)
		if err := pool.Submit(func() {
			defer func() {
				if p := recover(); p != nil {
					errs[i] = infra.NewErrorStack(fmt.Sprintf("[demo] round %d panic: %v", roundID, p))
					r.logger.ErrorStack(errs[i], "round panic")
				}
				wg.Done()
			}()
			roundCtx := context.WithValue(ctx, xlog.ContextKey(RoundContextField), roundID)
			rnd := rand.New(rand.NewPCG(seed, roundID))
			reports[i], errs[i] = r.runRound(roundCtx, roundID, rnd)
		}); err != nil {
			wg.Done()
			errs[i] = infra.WrapErrorStack(err)
			break
		}
	}
	wg.Wait()
	return reports, multierr.Combine(errs...)
}

func (r *Runner) runRound(ctx context.Context, roundID uint64, rnd *rand.Rand) (*RoundReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	start := time.Now()
	t := tree.NewRBTree[int]()
	defer t.Release()

	report := &RoundReport{
		Round: roundID,
		Inserted: lo.Times(r.cfg.Inserts, func(_ int) int {
			return rnd.IntN(r.cfg.MaxValue)
		}),
	}

	r.logger.DebugContext(ctx, "inserting", zap.Ints("values", report.Inserted))
	for _, v := range report.Inserted {
		if _, err := t.InsertValue(v); err != nil {
			r.logger.ErrorStackContext(ctx, err, "insert rejected", zap.Int("value", v))
			return nil, err
		}
	}
	r.stats.RecordOp(ctx, observability.OpInsert, int64(len(report.Inserted)))

	report.Searched = make([]SearchResult, 0, r.cfg.Searches)
	for i := 0; i < r.cfg.Searches; i++ {
		v := rnd.IntN(r.cfg.MaxValue)
		found := t.Search(v)
		report.Searched = append(report.Searched, SearchResult{Val: v, Found: found})
		r.stats.RecordSearch(ctx, found)
	}
	r.logger.DebugContext(ctx, "searched", zap.Any("results", report.Searched))

	report.Deleted = make([]int, 0, r.cfg.Deletes)
	for i := 0; i < r.cfg.Deletes; i++ {
		v := rnd.IntN(r.cfg.MaxValue)
		node := t.SearchNode(v)
		if node == nil {
			continue
		}
		if err := t.Delete(node); err != nil {
			r.logger.ErrorStackContext(ctx, err, "delete rejected", zap.Int("value", v))
			return nil, err
		}
		report.Deleted = append(report.Deleted, v)
	}
	r.stats.RecordOp(ctx, observability.OpDelete, int64(len(report.Deleted)))
	r.logger.DebugContext(ctx, "deleted", zap.Ints("values", report.Deleted))

	if err := tree.Validate[int](t); err != nil {
		r.logger.ErrorStackContext(ctx, err, "tree invariants broken")
		return nil, err
	}

	report.Ordered = make([]int, 0, t.Len())
	for iter := t.InOrder(); iter.Next(); {
		report.Ordered = append(report.Ordered, iter.Value())
	}
	report.DFS = collectRows(t.DFS())
	report.BFS = collectRows(t.BFS())

	cost := time.Since(start)
	r.stats.RecordRound(ctx, t.Len(), cost)
	r.logger.InfoContext(ctx, "round done",
		zap.Int64("size", t.Len()),
		zap.Int("deleted", len(report.Deleted)),
		zap.Duration("cost", cost),
	)
	return report, nil
}

func collectRows(iter tree.Iterator[tree.RBNode[int]]) []NodeRow {
	rows := make([]NodeRow, 0, 16)
	for iter.Next() {
		node := iter.Value()
		rows = append(rows, NodeRow{Val: node.Val(), Color: node.Color()})
	}
	return rows
}
