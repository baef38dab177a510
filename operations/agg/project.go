// Package agg provides the stream-end actions of the engine: Reduce folds
// every row result into a single accumulator, GroupBy partitions rows by a
// key and aggregates each group, and Aggregate folds rows through a Go-level
// accumulator. All three share one projection rule mapping an accumulator
// onto named output columns.
package agg

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/format"
)

// project resolves a final accumulator into output values. Scalars become
// one column, sequences one column per element, and mappings one column per
// key in sorted key order. Columns are auto-named col1..colN (mappings are
// named by key) unless the caller supplied names, whose arity must then
// match. Rendering is left to writeVals, so sinks that keep native types
// still see the typed values.
func project(v interface{}, names []string, conv *format.Converter) ([]string, []tabr.Value, error) {
	switch tv := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if names == nil {
			names = keys
		} else if len(names) != len(keys) {
			return nil, nil, fmt.Errorf("%d output columns named for %d values", len(names), len(keys))
		}
		vals := make([]tabr.Value, len(keys))
		for i, k := range keys {
			val, err := conv.FromNative(tv[k])
			if err != nil {
				return nil, nil, err
			}
			vals[i] = val
		}
		return names, vals, nil
	case []interface{}:
		if names == nil {
			names = autoNames(len(tv))
		} else if len(names) != len(tv) {
			return nil, nil, fmt.Errorf("%d output columns named for %d values", len(names), len(tv))
		}
		vals := make([]tabr.Value, len(tv))
		for i, e := range tv {
			val, err := conv.FromNative(e)
			if err != nil {
				return nil, nil, err
			}
			vals[i] = val
		}
		return names, vals, nil
	default:
		if names == nil {
			names = autoNames(1)
		} else if len(names) != 1 {
			return nil, nil, fmt.Errorf("%d output columns named for 1 value", len(names))
		}
		val, err := conv.FromNative(v)
		if err != nil {
			return nil, nil, err
		}
		return names, []tabr.Value{val}, nil
	}
}

// writeVals emits projected values, after an optional prefix of fixed cells,
// as one output row, keeping native types when the mode is on and the sink
// supports it.
func writeVals(w datasource.Writer, prefix tabr.Row, vals []tabr.Value, opts format.Options) error {
	if cw, ok := w.(datasource.CellWriter); ok && opts.KeepNative {
		cells := make([]interface{}, 0, len(prefix)+len(vals))
		for _, c := range prefix {
			cells = append(cells, c)
		}
		for _, v := range vals {
			cells = append(cells, format.NativeCell(v, opts))
		}
		return cw.WriteCells(cells)
	}
	row := prefix.Clone()
	for _, v := range vals {
		row = append(row, format.Cell(v, opts))
	}
	return w.Write(row)
}

func autoNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "col" + strconv.Itoa(i+1)
	}
	return names
}
