// Package accumulators provides ready-made Go-level aggregators for library
// callers folding row streams without interpreted code.
package accumulators

import (
	"strconv"
	"strings"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/schema"
)

// Accumulator folds rows into a single Value.
type Accumulator interface {
	// Accumulate adds a row to this Accumulator
	Accumulate(row tabr.Row) error
	// Value returns the accumulated result
	Value() tabr.Value
}

// Counter returns a new Count Accumulator
func Counter() Accumulator {
	return new(count)
}

type count struct {
	n int64
}

func (a *count) Accumulate(row tabr.Row) error {
	a.n++
	return nil
}

func (a *count) Value() tabr.Value {
	return tabr.Int(a.n)
}

// Adder returns an Accumulator summing a numeric column
func Adder(s *schema.Schema, colName string) (Accumulator, error) {
	pos, err := s.Position(colName)
	if err != nil {
		return nil, err
	}
	return &sum{pos: pos}, nil
}

type sum struct {
	pos   int
	total float64
}

func (a *sum) Accumulate(row tabr.Row) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(row[a.pos]), 64)
	if err != nil {
		return err
	}
	a.total += f
	return nil
}

func (a *sum) Value() tabr.Value {
	return tabr.Float(a.total)
}

// Collector returns an Accumulator gathering a column's cells into a
// sequence, in arrival order
func Collector(s *schema.Schema, colName string) (Accumulator, error) {
	pos, err := s.Position(colName)
	if err != nil {
		return nil, err
	}
	return &collect{pos: pos}, nil
}

type collect struct {
	pos   int
	cells []tabr.Value
}

func (a *collect) Accumulate(row tabr.Row) error {
	a.cells = append(a.cells, tabr.String(row[a.pos]))
	return nil
}

func (a *collect) Value() tabr.Value {
	return tabr.Seq(a.cells...)
}
