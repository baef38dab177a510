package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Combiner folds one per-row result into an accumulator.
type Combiner func(acc interface{}, v interface{}) (interface{}, error)

// Aggregator reduces one buffered group of rows to a single result. Rows are
// presented as selected-column maps, in arrival order.
type Aggregator func(rows []map[string]string) (interface{}, error)

// NewCombiner compiles combiner code: a Go expression over the bindings
//
//	acc interface{}              // the accumulator so far
//	v interface{}                // the current per-row result
//	f func(interface{}) float64  // coerce to float64, failing the fold otherwise
//	s func(interface{}) string   // coerce to string
//
// e.g. `f(acc) + f(v)` sums numeric row results.
func NewCombiner(code string) (Combiner, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	src := fmt.Sprintf(`(func(acc interface{}, v interface{}, f func(interface{}) float64, s func(interface{}) string) interface{} {
	return (%s)
})`, code)
	v, err := i.Eval(src)
	if err != nil {
		return nil, fmt.Errorf("combiner code failed to compile: %w", err)
	}
	fn, ok := v.Interface().(func(interface{}, interface{}, func(interface{}) float64, func(interface{}) string) interface{})
	if !ok {
		return nil, fmt.Errorf("combiner code did not compile to a combiner function")
	}
	return func(acc interface{}, val interface{}) (result interface{}, err error) {
		err = protectPlain(func() {
			result = fn(acc, val, coerceFloat, coerceString)
		})
		return result, err
	}, nil
}

// NewAggregator compiles aggregator code: a Go expression over the bindings
//
//	rows []map[string]string      // the group's rows, selected columns by name
//	count int                     // len(rows)
//	sum func(string) float64      // sum of a numeric column over the group
//	mean func(string) float64     // mean of a numeric column over the group
//
// e.g. `count` counts group members and `sum("n")` totals a column.
func NewAggregator(code string) (Aggregator, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	src := fmt.Sprintf(`(func(rows []map[string]string, count int, sum func(string) float64, mean func(string) float64) interface{} {
	return (%s)
})`, code)
	v, err := i.Eval(src)
	if err != nil {
		return nil, fmt.Errorf("aggregator code failed to compile: %w", err)
	}
	fn, ok := v.Interface().(func([]map[string]string, int, func(string) float64, func(string) float64) interface{})
	if !ok {
		return nil, fmt.Errorf("aggregator code did not compile to an aggregator function")
	}
	return func(rows []map[string]string) (result interface{}, err error) {
		sum := func(col string) float64 {
			var total float64
			for _, row := range rows {
				total += parseNum(col, row[col])
			}
			return total
		}
		mean := func(col string) float64 {
			if len(rows) == 0 {
				return 0
			}
			return sum(col) / float64(len(rows))
		}
		err = protectPlain(func() {
			result = fn(rows, len(rows), sum, mean)
		})
		return result, err
	}, nil
}

func coerceFloat(v interface{}) float64 {
	switch tv := v.(type) {
	case float64:
		return tv
	case float32:
		return float64(tv)
	case int:
		return float64(tv)
	case int64:
		return float64(tv)
	case string:
		return parseNum("value", tv)
	case nil:
		return 0
	default:
		panic(fmt.Errorf("cannot coerce %T to float64", v))
	}
}

func coerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func parseNum(name string, raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		panic(fmt.Errorf("column %s is not numeric: %w", name, err))
	}
	return f
}

func protectPlain(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = cause
		}
	}()
	fn()
	return nil
}
