// Package engine is the row-correspondence and execution-context core of
// Tabr: it assigns a stable index to every input row, dispatches rows to one
// or many workers while bounding in-flight memory, reconciles results back to
// their originating rows regardless of completion order, and hands reconciled
// pairs to an Action in a single-threaded output loop.
package engine

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	errors "github.com/go-tabr/tabr/errors"
	"github.com/go-tabr/tabr/format"
)

// Config describes a single run of the engine.
type Config struct {
	Source datasource.Reader
	Action tabr.Action
	// Factory constructs one Transformation per worker. A nil Factory skips
	// evaluation entirely (used by Reverse) and forces sequential execution.
	Factory tabr.TransformationFactory
	// Workers is the number of parallel workers. Values below 2 select the
	// sequential strategy.
	Workers int
	// BatchSize is the number of consecutive tasks dispatched to one worker
	// before moving to the next. Defaults to 64.
	BatchSize int
	// Unordered releases results in completion order instead of submission
	// order.
	Unordered bool
	// IgnoreRowErrors demotes evaluation errors to the serializer's null
	// placeholder instead of aborting the run.
	IgnoreRowErrors bool
	// Converter maps native results onto tabr.Value. Defaults to a Converter
	// with no custom handlers.
	Converter *format.Converter
	Log       zerolog.Logger
}

type run struct {
	cfg       *Config
	conv      *format.Converter
	log       zerolog.Logger
	stats     *Stats
	tolerated *multierror.Error
}

// Run executes a configured run to completion, returning its Stats. The
// returned error is an InterruptedError when ctx was cancelled, a
// ClosedSinkError when the output's consumer went away, and otherwise the
// first fatal error of the run.
func (cfg *Config) Run(ctx context.Context) (*Stats, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	r := &run{cfg: cfg, conv: cfg.Converter, log: cfg.Log, stats: startStats()}
	if r.conv == nil {
		r.conv = format.CreateConverter()
	}
	var err error
	if cfg.Workers > 1 && cfg.Factory != nil {
		err = r.parallel(ctx)
	} else {
		err = r.sequential(ctx)
	}
	if err != nil {
		if earlyTermination(err) {
			r.abort()
		}
		return r.stats, err
	}
	if err := cfg.Action.Finish(); err != nil {
		return r.stats, err
	}
	if merr := r.tolerated.ErrorOrNil(); merr != nil {
		r.log.Warn().Int("rows", len(r.tolerated.Errors)).Msg("row errors tolerated")
		r.log.Debug().Err(merr).Msg("tolerated row errors")
	}
	r.stats.logSummary(r.log)
	return r.stats, nil
}

// sequential processes tasks strictly in submission order on a single
// worker. Correspondence tracking degenerates to a no-op: a result always
// matches the task just dispatched.
func (r *run) sequential(ctx context.Context) error {
	var tr tabr.Transformation
	if r.cfg.Factory != nil {
		var err error
		tr, err = r.cfg.Factory(0)
		if err != nil {
			return err
		}
	}
	var next uint64
	for {
		select {
		case <-ctx.Done():
			return errors.InterruptedError{}
		default:
		}
		row, err := r.cfg.Source.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		task := tabr.Task{Index: next, Row: row}
		next++
		r.stats.Rows++
		res := tabr.Result{Index: task.Index}
		if tr != nil {
			res.Value, res.Err = evalTask(tr, task)
		}
		r.stats.Results++
		if err := r.deliver(row, res); err != nil {
			return err
		}
	}
}

// evalTask runs one task through the hook lifecycle: before, main, after.
// After is skipped when main fails; the failure is reported as the result.
func evalTask(tr tabr.Transformation, task tabr.Task) (interface{}, error) {
	if err := tr.Before(task); err != nil {
		return nil, err
	}
	v, err := tr.Eval(task)
	if err != nil {
		return nil, err
	}
	if err := tr.After(task, v); err != nil {
		return nil, err
	}
	return v, nil
}

// earlyTermination reports whether an error ends the run by interruption or
// a consumer-closed sink rather than by a data or stream failure.
func earlyTermination(err error) bool {
	var interrupted errors.InterruptedError
	var closed errors.ClosedSinkError
	return stderrors.As(err, &interrupted) || stderrors.As(err, &closed)
}

// abort releases the action's output on early termination: everything fully
// serialized is flushed, nothing partial is emitted. A secondary closed-sink
// error is expected when the consumer went away and is ignored.
func (r *run) abort() {
	if err := r.cfg.Action.Abort(); err != nil {
		var closed errors.ClosedSinkError
		if !stderrors.As(err, &closed) {
			r.log.Debug().Err(err).Msg("flush on early termination failed")
		}
	}
}

// deliver turns one reconciled (row, result) pair into Action output,
// applying the error-tolerance policy.
func (r *run) deliver(row tabr.Row, res tabr.Result) error {
	if res.Err != nil {
		var evalErr errors.EvaluationError
		if r.cfg.IgnoreRowErrors && stderrors.As(res.Err, &evalErr) {
			r.tolerated = multierror.Append(r.tolerated, res.Err)
			r.stats.Tolerated++
			r.log.Debug().Err(res.Err).Uint64("index", res.Index).Msg("row error tolerated")
			return r.cfg.Action.Dispatch(row, tabr.Null())
		}
		return res.Err
	}
	v, err := r.conv.FromNative(res.Value)
	if err != nil {
		return err
	}
	return r.cfg.Action.Dispatch(row, v)
}
