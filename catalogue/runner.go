package catalogue

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/features"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

// DefaultResolutions are the resolutions, in seconds, used when none are
// configured. 0 is the whole piece.
var DefaultResolutions = []float64{0.1, 0.5, 10, 0}

// Runner extracts catalogue pipelines from a chroma table
type Runner struct {
	opts    Options
	workers int
	logger  logging.Logger
}

// NewRunner creates a runner executing at most workers pipelines at once.
// workers < 1 means one at a time.
func NewRunner(opts Options, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		opts:    opts,
		workers: workers,
		logger:  logging.WithFields(logging.Fields{"component": "catalogue"}),
	}
}

// RunResolutions runs the named pipeline once per resolution, concurrently.
// Resampled pipelines get their columns suffixed with "_" and the formatted
// resolution ("100ms", "10s", "global"); the other kinds run once with
// unsuffixed columns. The result has one row per piece of data, keyed
// (piece, 0); pieces a run produced nothing for get NaN.
func (r *Runner) RunResolutions(ctx context.Context, data *dataset.Table, name string, resolutions []float64) (*dataset.Table, error) {
	entry, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if entry.Kind != Resampled {
		resolutions = []float64{entry.Resolution}
	}
	if len(resolutions) == 0 {
		return nil, fmt.Errorf("pipeline %s: no resolutions", name)
	}

	results := make([]*dataset.Table, len(resolutions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, res := range resolutions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			out, err := entry.Build(res, r.opts).Run(data)
			if err != nil {
				return fmt.Errorf("pipeline %s at %s: %w", name, resolutionLabel(res), err)
			}
			if entry.Kind == Resampled {
				out = out.WithSuffix("_" + resolutionLabel(res))
			}
			results[i] = out

			r.logger.Debug("pipeline finished", logging.Fields{
				"pipeline":   name,
				"resolution": resolutionLabel(res),
				"rows":       out.Len(),
				"duration":   time.Since(start),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return r.merge(data, results), nil
}

// Run extracts every named pipeline and joins the results per piece
func (r *Runner) Run(ctx context.Context, data *dataset.Table, names []string, resolutions []float64) (*dataset.Table, error) {
	results := make([]*dataset.Table, 0, len(names))
	for _, name := range names {
		out, err := r.RunResolutions(ctx, data, name, resolutions)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}

	r.logger.Info("feature extraction finished", logging.Fields{
		"pipelines": len(names),
		"pieces":    len(data.Pieces()),
	})
	return r.merge(data, results), nil
}

// merge joins tables keyed (piece, 0) onto one row per piece of data
func (r *Runner) merge(data *dataset.Table, tables []*dataset.Table) *dataset.Table {
	pieces := data.Pieces()
	keys := make([]dataset.Key, len(pieces))
	for i, p := range pieces {
		keys[i] = dataset.Key{Piece: p}
	}

	out := dataset.FromKeys(keys)
	for _, t := range tables {
		out = out.Join(t, r.opts.Suffix)
	}
	return out
}

func resolutionLabel(seconds float64) string {
	return features.FormatResolution(dataset.Seconds(seconds))
}
