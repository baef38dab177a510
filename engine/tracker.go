package engine

import (
	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
)

// tracker is the pending table: it holds every dispatched row under its index
// until exactly one matching result is consumed. Only (index, row) crosses
// the worker boundary, so the original row is recovered here rather than
// round-tripped through a worker. The tracker is owned exclusively by the
// run loop and is never touched concurrently; its size is bounded by the
// in-flight dispatch window, not by the input.
type tracker struct {
	pending map[uint64]tabr.Row
}

func createTracker() *tracker {
	return &tracker{pending: make(map[uint64]tabr.Row)}
}

// add records a row under its index at dispatch time
func (t *tracker) add(index uint64, row tabr.Row) {
	t.pending[index] = row
}

// take pairs an arriving result index with its original row, removing the
// entry. An index with no pending entry is a protocol invariant violation:
// it indicates a pool defect, never a data condition, and is fatal.
func (t *tracker) take(index uint64) (tabr.Row, error) {
	row, ok := t.pending[index]
	if !ok {
		return nil, errors.CorrespondenceError{Index: index}
	}
	delete(t.pending, index)
	return row, nil
}

// size returns the number of rows awaiting results
func (t *tracker) size() int {
	return len(t.pending)
}
