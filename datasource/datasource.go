// Package datasource defines how row streams enter and leave the engine.
// Concrete formats live in subpackages: dsv reads and writes delimited text,
// jsonl reads newline-delimited JSON, and file opens paths, URLs and
// compressed inputs.
package datasource

import (
	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/schema"
)

// Reader produces the rows of an input stream in read order. Next returns
// io.EOF after the final row.
type Reader interface {
	// Schema returns the header index for this stream, built from the first
	// row or synthesized for headerless streams
	Schema() *schema.Schema
	// Next returns the next row of the stream
	Next() (tabr.Row, error)
	// Close releases the underlying input
	Close() error
}

// Writer consumes output rows. Implementations must report a consumer-closed
// sink as errors.ClosedSinkError so the engine can terminate cleanly, and
// must never emit a partial row: whatever was fully serialized before an
// early termination is flushed, nothing else.
type Writer interface {
	// SetHeader declares the output columns. It must be called at most once,
	// before the first Write; writers for headerless streams may ignore it.
	SetHeader(names []string) error
	// Write emits one output row
	Write(row tabr.Row) error
	// Flush forces buffered rows out and releases the underlying sink
	Flush() error
}

// CellWriter is implemented by writers able to keep native cell types in
// their output, such as the JSON writer. Cells may be strings or the native
// values produced by format.NativeCell; actions fall back to Write with
// rendered text when the sink is not a CellWriter.
type CellWriter interface {
	WriteCells(cells []interface{}) error
}
