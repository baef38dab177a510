package transform

import (
	"fmt"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/schema"
)

type filterAction struct {
	w datasource.Writer
}

// Filter emits each original row unchanged iff its result is boolean true.
// An absent result drops the row, so tolerated row errors filter out their
// rows.
func Filter(w datasource.Writer, s *schema.Schema) (tabr.Action, error) {
	if err := w.SetHeader(s.Names()); err != nil {
		return nil, err
	}
	return &filterAction{w: w}, nil
}

func (a *filterAction) Dispatch(row tabr.Row, v tabr.Value) error {
	switch v.Kind() {
	case tabr.KindNull:
		return nil
	case tabr.KindBool:
		if v.BoolVal() {
			return a.w.Write(row)
		}
		return nil
	default:
		return fmt.Errorf("filter result must be a boolean")
	}
}

func (a *filterAction) Finish() error {
	return a.w.Flush()
}

func (a *filterAction) Abort() error {
	return a.w.Flush()
}
