package transform

import (
	"fmt"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/schema"
)

type flatMapAction struct {
	w    datasource.Writer
	opts format.Options
}

// FlatMap treats each result as a sequence and emits one output row per
// element: the original row plus the serialized element as a trailing cell.
// An absent result emits nothing, so tolerated row errors simply drop rows.
func FlatMap(w datasource.Writer, s *schema.Schema, newColumn string, opts format.Options) (tabr.Action, error) {
	if err := w.SetHeader(append(s.Names(), newColumn)); err != nil {
		return nil, err
	}
	return &flatMapAction{w: w, opts: opts}, nil
}

func (a *flatMapAction) Dispatch(row tabr.Row, v tabr.Value) error {
	if v.IsNull() {
		return nil
	}
	if v.Kind() != tabr.KindSeq {
		return fmt.Errorf("flatmap result must be a sequence, got %v", format.Cell(v, a.opts))
	}
	for _, elem := range v.SeqVal() {
		if err := writeWithResult(a.w, row, elem, a.opts); err != nil {
			return err
		}
	}
	return nil
}

func (a *flatMapAction) Finish() error {
	return a.w.Flush()
}

func (a *flatMapAction) Abort() error {
	return a.w.Flush()
}
