package engine

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
	"github.com/go-tabr/tabr/logging"
)

// parallel runs tasks across N workers. Workers share nothing: each owns its
// Transformation (init code runs once per worker, during construction) and
// communicates with the run loop purely by message passing of (index, row)
// tasks and (index, result) outcomes. The pending table and the action are
// owned by the run loop alone.
func (r *run) parallel(ctx context.Context) error {
	workers := r.cfg.Workers
	batch := r.cfg.BatchSize
	// The results channel holds the entire in-flight window, so a worker can
	// always report a completed task without blocking. This is what makes
	// the blocking round-robin dispatch below deadlock-free.
	window := workers * batch
	taskChs := make([]chan tabr.Task, workers)
	results := make(chan tabr.Result, window)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		taskChs[w] = make(chan tabr.Task, batch)
		w := w
		g.Go(func() error {
			return r.worker(gctx, w, taskChs[w], results)
		})
	}
	loopErr := r.dispatchAndCollect(ctx, gctx, taskChs, results)
	for _, ch := range taskChs {
		close(ch)
	}
	if werr := g.Wait(); werr != nil {
		return werr
	}
	return loopErr
}

// worker evaluates tasks until its channel closes or the run is cancelled.
// An interrupt is observed within one task boundary; the worker terminates
// rather than continuing to process.
func (r *run) worker(ctx context.Context, id int, tasks <-chan tabr.Task, results chan<- tabr.Result) error {
	log := logging.ForWorker(r.log, id)
	tr, err := r.cfg.Factory(id)
	if err != nil {
		return fmt.Errorf("worker %d failed to initialize: %w", id, err)
	}
	log.Debug().Msg("worker ready")
	for {
		select {
		case <-ctx.Done():
			return nil
		case task, ok := <-tasks:
			if !ok {
				return nil
			}
			res := tabr.Result{Index: task.Index}
			res.Value, res.Err = evalTask(tr, task)
			select {
			case results <- res:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// dispatchAndCollect is the parent's single dispatch/collection loop. It
// alternates between feeding workers (while the in-flight window has room)
// and reconciling arriving results with their pending rows. In ordered mode
// completed-but-out-of-turn results are buffered until every earlier index
// has been released.
func (r *run) dispatchAndCollect(outer context.Context, ctx context.Context, taskChs []chan tabr.Task, results chan tabr.Result) error {
	window := len(taskChs) * r.cfg.BatchSize
	track := createTracker()
	reorder := make(map[uint64]tabr.Result)
	var next, nextEmit uint64
	sourceDone := false
	cur, inBatch := 0, 0
	for !sourceDone || track.size() > 0 {
		if !sourceDone && track.size() < window {
			row, err := r.cfg.Source.Next()
			if err == io.EOF {
				sourceDone = true
				continue
			}
			if err != nil {
				return err
			}
			task := tabr.Task{Index: next, Row: row}
			next++
			r.stats.Rows++
			track.add(task.Index, task.Row)
			select {
			case taskChs[cur] <- task:
			case <-ctx.Done():
				return interruptError(outer)
			}
			inBatch++
			if inBatch == r.cfg.BatchSize {
				cur = (cur + 1) % len(taskChs)
				inBatch = 0
			}
			continue
		}
		select {
		case res := <-results:
			if r.cfg.Unordered {
				if err := r.reconcile(track, res); err != nil {
					return err
				}
				continue
			}
			reorder[res.Index] = res
			for {
				buffered, ok := reorder[nextEmit]
				if !ok {
					break
				}
				delete(reorder, nextEmit)
				if err := r.reconcile(track, buffered); err != nil {
					return err
				}
				nextEmit++
			}
		case <-ctx.Done():
			return interruptError(outer)
		}
	}
	return nil
}

// reconcile pairs a result with its pending row and delivers the pair.
func (r *run) reconcile(track *tracker, res tabr.Result) error {
	row, err := track.take(res.Index)
	if err != nil {
		return err
	}
	r.stats.Results++
	return r.deliver(row, res)
}

// interruptError distinguishes an external interrupt from a cancellation
// triggered by a failing worker: only the former is reported here, the
// latter's real error surfaces from the errgroup instead.
func interruptError(outer context.Context) error {
	if outer.Err() != nil {
		return errors.InterruptedError{}
	}
	return nil
}
