// Package transform provides the row-for-row actions of the engine: Map,
// FlatMap, Filter and Reverse. Each action owns its output writer; the
// engine calls Dispatch once per reconciled (row, result) pair and Finish
// once at stream end.
package transform

import (
	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/schema"
)

type mapAction struct {
	w    datasource.Writer
	opts format.Options
}

// Map emits each original row plus the serialized result as one new trailing
// cell, under a new column name.
func Map(w datasource.Writer, s *schema.Schema, newColumn string, opts format.Options) (tabr.Action, error) {
	if err := w.SetHeader(append(s.Names(), newColumn)); err != nil {
		return nil, err
	}
	return &mapAction{w: w, opts: opts}, nil
}

func (a *mapAction) Dispatch(row tabr.Row, v tabr.Value) error {
	return writeWithResult(a.w, row, v, a.opts)
}

func (a *mapAction) Finish() error {
	return a.w.Flush()
}

func (a *mapAction) Abort() error {
	return a.w.Flush()
}

// writeWithResult emits one original row plus one result cell, keeping the
// result native when the mode is on and the sink supports it.
func writeWithResult(w datasource.Writer, row tabr.Row, v tabr.Value, opts format.Options) error {
	if cw, ok := w.(datasource.CellWriter); ok && opts.KeepNative {
		cells := make([]interface{}, len(row)+1)
		for i, c := range row {
			cells[i] = c
		}
		cells[len(row)] = format.NativeCell(v, opts)
		return cw.WriteCells(cells)
	}
	return w.Write(append(row.Clone(), format.Cell(v, opts)))
}
