package agg

import (
	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/accumulators"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/format"
)

type aggregateAction struct {
	w    datasource.Writer
	acc  accumulators.Accumulator
	name string
	opts format.Options
}

// Aggregate folds every row through a Go-level Accumulator, ignoring
// transformation results, and emits the accumulated value as a single row at
// stream end. It is the library-API counterpart of Reduce for callers who
// fold with Go code instead of interpreted code.
func Aggregate(w datasource.Writer, acc accumulators.Accumulator, column string, opts format.Options) tabr.Action {
	return &aggregateAction{w: w, acc: acc, name: column, opts: opts}
}

func (a *aggregateAction) Dispatch(row tabr.Row, v tabr.Value) error {
	return a.acc.Accumulate(row)
}

func (a *aggregateAction) Finish() error {
	if err := a.w.SetHeader([]string{a.name}); err != nil {
		return err
	}
	if err := writeVals(a.w, nil, []tabr.Value{a.acc.Value()}, a.opts); err != nil {
		return err
	}
	return a.w.Flush()
}

// Abort emits nothing: the accumulated row only leaves at Finish.
func (a *aggregateAction) Abort() error {
	return nil
}
