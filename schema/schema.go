// Package schema defines the header index for a delimited row stream: an
// ordered, duplicate-checked mapping from column name to position, plus
// column selections which project rows without mutating them.
package schema

import (
	"strconv"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/errors"
)

// Schema is an immutable mapping from column name to zero-based position
// within a Row. It is built once from the stream's header row (or synthesized
// for headerless streams) and lent by reference to every consumer; it is
// never mutated after construction.
type Schema struct {
	names     []string
	index     map[string]int
	anonymous bool
}

// CreateSchema builds a Schema from a header row. Duplicate column names are
// rejected.
func CreateSchema(names []string) (*Schema, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if _, ok := index[name]; ok {
			return nil, errors.DuplicateColumnError{Name: name}
		}
		index[name] = i
	}
	owned := make([]string, len(names))
	copy(owned, names)
	return &Schema{names: owned, index: index}, nil
}

// CreateAnonymousSchema builds a Schema for a headerless stream of the given
// width. Columns are addressable only by position, exposed as the decimal
// strings "0".."width-1".
func CreateAnonymousSchema(width int) *Schema {
	names := make([]string, width)
	index := make(map[string]int, width)
	for i := range names {
		name := strconv.Itoa(i)
		names[i] = name
		index[name] = i
	}
	return &Schema{names: names, index: index, anonymous: true}
}

// Position returns the zero-based position of the named column
func (s *Schema) Position(name string) (int, error) {
	pos, ok := s.index[name]
	if !ok {
		return 0, errors.UnknownColumnError{Name: name}
	}
	return pos, nil
}

// Names returns the column names of this Schema, in position order
func (s *Schema) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// NumColumns returns the number of columns in this Schema
func (s *Schema) NumColumns() int {
	return len(s.names)
}

// Anonymous returns true iff this Schema was synthesized for a headerless stream
func (s *Schema) Anonymous() bool {
	return s.anonymous
}

// Validate checks a Row's width against this Schema. A mismatch is a
// structural error: the stream is malformed and the run must abort.
func (s *Schema) Validate(index uint64, row tabr.Row) error {
	if len(row) != len(s.names) {
		return errors.RowWidthError{Index: index, Expected: len(s.names), Actual: len(row)}
	}
	return nil
}

// Select builds a Selection exposing an arbitrary subset and ordering of this
// Schema's columns to a transformation. Passing no names selects every column
// in Schema order.
func (s *Schema) Select(names ...string) (*Selection, error) {
	if len(names) == 0 {
		names = s.names
	}
	positions := make([]int, len(names))
	for i, name := range names {
		pos, err := s.Position(name)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	owned := make([]string, len(names))
	copy(owned, names)
	return &Selection{names: owned, positions: positions}, nil
}

// Selection projects a Row onto a fixed subset and ordering of columns,
// without mutating the underlying Row.
type Selection struct {
	names     []string
	positions []int
}

// Names returns the column names exposed by this Selection, in order
func (sel *Selection) Names() []string {
	names := make([]string, len(sel.names))
	copy(names, sel.names)
	return names
}

// Project returns the selected cells of a Row as a name-to-value mapping
func (sel *Selection) Project(row tabr.Row) map[string]string {
	cells := make(map[string]string, len(sel.names))
	for i, pos := range sel.positions {
		cells[sel.names[i]] = row[pos]
	}
	return cells
}

// Cells returns the selected cells of a Row in Selection order
func (sel *Selection) Cells(row tabr.Row) []string {
	cells := make([]string, len(sel.positions))
	for i, pos := range sel.positions {
		cells[i] = row[pos]
	}
	return cells
}
