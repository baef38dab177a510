package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-tabr/tabr"
)

// Cell renders a Value as canonical cell text. The Value variant set is
// closed, so rendering never fails; unrepresentable results are rejected
// earlier, by Converter.FromNative.
func Cell(v tabr.Value, opts Options) string {
	switch v.Kind() {
	case tabr.KindNull:
		return opts.NullToken
	case tabr.KindBool:
		if v.BoolVal() {
			return opts.TrueToken
		}
		return opts.FalseToken
	case tabr.KindInt:
		return strconv.FormatInt(v.IntVal(), 10)
	case tabr.KindFloat:
		return strconv.FormatFloat(v.FloatVal(), 'f', -1, 64)
	case tabr.KindString:
		return v.StringVal()
	case tabr.KindSeq:
		elems := make([]string, len(v.SeqVal()))
		for i, e := range v.SeqVal() {
			elems[i] = Cell(e, opts)
		}
		return strings.Join(elems, opts.SeqSeparator)
	case tabr.KindTime:
		return v.TimeVal().Format(time.RFC3339)
	default:
		return v.ErrVal().Error()
	}
}

// NativeCell renders a Value for sinks able to keep native types: under
// KeepNative, Null, Bool, Int and Float keep their type and sequences become
// native arrays, while every other kind falls back to its canonical cell
// text. Without KeepNative it is equivalent to Cell.
func NativeCell(v tabr.Value, opts Options) interface{} {
	if !opts.KeepNative {
		return Cell(v, opts)
	}
	switch v.Kind() {
	case tabr.KindNull:
		return nil
	case tabr.KindBool:
		return v.BoolVal()
	case tabr.KindInt:
		return v.IntVal()
	case tabr.KindFloat:
		return v.FloatVal()
	case tabr.KindSeq:
		elems := make([]interface{}, len(v.SeqVal()))
		for i, e := range v.SeqVal() {
			elems[i] = NativeCell(e, opts)
		}
		return elems
	default:
		return Cell(v, opts)
	}
}

// Cells renders a sequence Value as one cell per element. A non-sequence
// Value yields a single cell.
func Cells(v tabr.Value, opts Options) []string {
	if v.Kind() != tabr.KindSeq {
		return []string{Cell(v, opts)}
	}
	cells := make([]string, len(v.SeqVal()))
	for i, e := range v.SeqVal() {
		cells[i] = Cell(e, opts)
	}
	return cells
}

// MappedRow renders a name-to-Value mapping as a Row filtered to a fixed
// output column order. Names absent from the mapping render as the null
// token.
func MappedRow(vals map[string]tabr.Value, order []string, opts Options) tabr.Row {
	row := make(tabr.Row, len(order))
	for i, name := range order {
		if v, ok := vals[name]; ok {
			row[i] = Cell(v, opts)
		} else {
			row[i] = opts.NullToken
		}
	}
	return row
}
