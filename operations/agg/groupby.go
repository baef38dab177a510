package agg

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/schema"
)

type group struct {
	key  string
	rows []map[string]string
}

type groupByAction struct {
	w       datasource.Writer
	agg     eval.Aggregator
	sel     *schema.Selection
	columns []string
	conv    *format.Converter
	opts    format.Options
	// groups are bucketed by xxhash64 of the serialized key; buckets chain
	// on the rare collision. First-seen order is preserved for output.
	groups map[uint64][]*group
	order  []*group
}

// GroupBy partitions rows by their result, used as the group key, and at
// stream end applies the aggregator to each buffered group. One output row
// is emitted per distinct key: the serialized key under the column "group",
// followed by the aggregate's projected columns. The whole input is buffered
// (keyed), since group membership is only known once the full key
// distribution has been observed.
func GroupBy(w datasource.Writer, agg eval.Aggregator, sel *schema.Selection, columns []string, conv *format.Converter, opts format.Options) tabr.Action {
	return &groupByAction{
		w:       w,
		agg:     agg,
		sel:     sel,
		columns: columns,
		conv:    conv,
		opts:    opts,
		groups:  make(map[uint64][]*group),
	}
}

func (a *groupByAction) Dispatch(row tabr.Row, v tabr.Value) error {
	key := format.Cell(v, a.opts)
	h := xxhash.Sum64String(key)
	for _, g := range a.groups[h] {
		if g.key == key {
			g.rows = append(g.rows, a.sel.Project(row))
			return nil
		}
	}
	g := &group{key: key, rows: []map[string]string{a.sel.Project(row)}}
	a.groups[h] = append(a.groups[h], g)
	a.order = append(a.order, g)
	return nil
}

func (a *groupByAction) Finish() error {
	wroteHeader := false
	for _, g := range a.order {
		result, err := a.agg(g.rows)
		if err != nil {
			return fmt.Errorf("aggregating group %q: %w", g.key, err)
		}
		names, vals, err := project(result, a.columns, a.conv)
		if err != nil {
			return err
		}
		if !wroteHeader {
			if err := a.w.SetHeader(append([]string{"group"}, names...)); err != nil {
				return err
			}
			wroteHeader = true
		}
		if err := writeVals(a.w, tabr.Row{g.key}, vals, a.opts); err != nil {
			return err
		}
	}
	return a.w.Flush()
}

// Abort emits nothing: groups only leave the buffer at Finish.
func (a *groupByAction) Abort() error {
	return nil
}
