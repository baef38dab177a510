package transform

import (
	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/schema"
)

type reverseAction struct {
	w    datasource.Writer
	rows []tabr.Row
}

// Reverse emits all rows in last-to-first order. The stream is materialized
// in memory; out-of-core reversal belongs to a backward-reading input, not
// to this action. Reverse needs no transformation, so it is run with a nil
// factory and results are ignored.
func Reverse(w datasource.Writer, s *schema.Schema) (tabr.Action, error) {
	if err := w.SetHeader(s.Names()); err != nil {
		return nil, err
	}
	return &reverseAction{w: w}, nil
}

func (a *reverseAction) Dispatch(row tabr.Row, v tabr.Value) error {
	a.rows = append(a.rows, row)
	return nil
}

func (a *reverseAction) Finish() error {
	for i := len(a.rows) - 1; i >= 0; i-- {
		if err := a.w.Write(a.rows[i]); err != nil {
			return err
		}
	}
	return a.w.Flush()
}

// Abort emits nothing: rows only leave the buffer at Finish, so an aborted
// reversal has no fully serialized output to flush.
func (a *reverseAction) Abort() error {
	return nil
}
