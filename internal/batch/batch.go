// Package batch casts charts for many birth profiles in parallel.
package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/logging"
	"github.com/papapumpkin/kundali/internal/profile"
	"github.com/papapumpkin/kundali/internal/telemetry"
)

// Item is the outcome for one profile file. Exactly one of Chart and Err is
// set.
type Item struct {
	Path  string
	Name  string
	Chart *chart.Chart
	Err   error
}

// Runner computes charts with a bounded number of workers.
type Runner struct {
	Engine   *chart.Engine
	Ayanamsa ephemeris.Ayanamsa // applied to profiles that name none
	Workers  int
	Logger   *slog.Logger // nil discards
	Events   *telemetry.Emitter
}

// Run computes one Item per path, in input order. A failing profile does not
// stop the others; Run itself fails only when ctx is cancelled, returning the
// items finished so far.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Item, error) {
	items := make([]Item, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = r.One(path)
			return nil
		})
	}

	// gctx is always cancelled once Wait returns; only the caller's context
	// says whether the run was interrupted.
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, ctx.Err()
}

// One loads and computes a single profile.
func (r *Runner) One(path string) Item {
	it := Item{Path: path}
	p, err := profile.Load(path)
	if err != nil {
		it.Err = err
		r.record(it)
		return it
	}
	it.Name = p.Name

	in, err := p.Input(r.Ayanamsa)
	if err != nil {
		it.Err = err
		r.record(it)
		return it
	}
	it.Chart, it.Err = r.Engine.Compute(in)
	r.record(it)
	return it
}

func (r *Runner) record(it Item) {
	data := map[string]any{"path": it.Path, "ok": it.Err == nil}
	var chartID string
	if it.Chart != nil {
		chartID = it.Chart.ID
		data["failures"] = len(it.Chart.Failures)
	}
	if it.Err != nil {
		data["error"] = it.Err.Error()
		r.logger().Warn("batch.item_failed", "path", it.Path, "err", it.Err)
	}
	if err := r.Events.Emit(telemetry.Event{Kind: telemetry.KindBatchItem, ChartID: chartID, Data: data}); err != nil {
		r.logger().Warn("telemetry.emit_failed", "err", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}
