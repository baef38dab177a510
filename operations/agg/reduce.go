package agg

import (
	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/format"
)

type reduceAction struct {
	w        datasource.Writer
	combiner eval.Combiner
	acc      interface{}
	columns  []string
	conv     *format.Converter
	opts     format.Options
}

// Reduce folds every row result into a single accumulator, left to right in
// dispatch order, starting from a caller-supplied initial value, and emits
// exactly one output row at stream end.
func Reduce(w datasource.Writer, combiner eval.Combiner, initial interface{}, columns []string, conv *format.Converter, opts format.Options) tabr.Action {
	return &reduceAction{w: w, combiner: combiner, acc: initial, columns: columns, conv: conv, opts: opts}
}

func (a *reduceAction) Dispatch(row tabr.Row, v tabr.Value) error {
	acc, err := a.combiner(a.acc, v.Native())
	if err != nil {
		return err
	}
	a.acc = acc
	return nil
}

func (a *reduceAction) Finish() error {
	names, vals, err := project(a.acc, a.columns, a.conv)
	if err != nil {
		return err
	}
	if err := a.w.SetHeader(names); err != nil {
		return err
	}
	if err := writeVals(a.w, nil, vals, a.opts); err != nil {
		return err
	}
	return a.w.Flush()
}

// Abort emits nothing: the fold's single row only leaves at Finish.
func (a *reduceAction) Abort() error {
	return nil
}
