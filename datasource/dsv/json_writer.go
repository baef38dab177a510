package dsv

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/go-tabr/tabr"
)

// JSONWriter emits rows as a JSON array of objects keyed by output column
// name, optionally pretty-printed. It satisfies the same Writer contract as
// the DSV Writer, so every action can target either format.
type JSONWriter struct {
	out    *bufio.Writer
	pretty bool
	header []string
	wrote  bool
}

// CreateJSONWriter returns a new JSONWriter
func CreateJSONWriter(out io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{out: bufio.NewWriter(out), pretty: pretty}
}

// SetHeader declares the output columns, which become object keys
func (w *JSONWriter) SetHeader(names []string) error {
	w.header = names
	return nil
}

// Write emits one output row as a JSON object with every value a string.
func (w *JSONWriter) Write(row tabr.Row) error {
	cells := make([]interface{}, len(row))
	for i, c := range row {
		cells[i] = c
	}
	return w.writeObject(cells)
}

// WriteCells emits one output row from mixed cells: strings emit as JSON
// strings, anything else as its native JSON representation.
func (w *JSONWriter) WriteCells(cells []interface{}) error {
	return w.writeObject(cells)
}

// writeObject serializes one row object. Key order follows the output column
// order, so objects are built by hand rather than through a Go map.
func (w *JSONWriter) writeObject(cells []interface{}) error {
	var buf []byte
	if !w.wrote {
		buf = append(buf, '[')
	} else {
		buf = append(buf, ',')
	}
	if w.pretty {
		buf = append(buf, '\n', ' ', ' ')
	}
	buf = append(buf, '{')
	for i, name := range w.header {
		if i > 0 {
			buf = append(buf, ',')
			if w.pretty {
				buf = append(buf, ' ')
			}
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(cellAt(cells, i))
		if err != nil {
			return err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		if w.pretty {
			buf = append(buf, ' ')
		}
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	w.wrote = true
	if _, err := w.out.Write(buf); err != nil {
		return mapSinkError(err)
	}
	return nil
}

// Flush closes the JSON array and forces buffered output out
func (w *JSONWriter) Flush() error {
	if !w.wrote {
		if _, err := w.out.WriteString("[]"); err != nil {
			return mapSinkError(err)
		}
	} else {
		if w.pretty {
			if _, err := w.out.WriteString("\n]"); err != nil {
				return mapSinkError(err)
			}
		} else {
			if err := w.out.WriteByte(']'); err != nil {
				return mapSinkError(err)
			}
		}
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return mapSinkError(err)
	}
	return mapSinkError(w.out.Flush())
}

func cellAt(cells []interface{}, i int) interface{} {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
