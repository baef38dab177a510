package dsv

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"syscall"

	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
)

// WriterConf configures a DSV Writer
type WriterConf struct {
	Delimiter rune // The delimiter separating output columns. Defaults to ,
	NoHeader  bool // When true, no header row is emitted
}

// Writer emits rows as DSV. Rows are buffered by the underlying csv.Writer
// and a row is only ever emitted whole: on early termination everything
// fully serialized is flushed and nothing else.
type Writer struct {
	conf   *WriterConf
	writer *csv.Writer
	header []string
	wrote  bool
}

// CreateWriter returns a new DSV Writer
func CreateWriter(out io.Writer, conf *WriterConf) *Writer {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	writer := csv.NewWriter(out)
	writer.Comma = conf.Delimiter
	return &Writer{conf: conf, writer: writer}
}

// SetHeader declares the output columns. The header row is emitted lazily,
// ahead of the first data row.
func (w *Writer) SetHeader(names []string) error {
	if !w.conf.NoHeader {
		w.header = names
	}
	return nil
}

// Write emits one output row
func (w *Writer) Write(row tabr.Row) error {
	if !w.wrote && w.header != nil {
		if err := w.writer.Write(w.header); err != nil {
			return mapSinkError(err)
		}
	}
	w.wrote = true
	if err := w.writer.Write(row); err != nil {
		return mapSinkError(err)
	}
	return nil
}

// Flush forces buffered rows out
func (w *Writer) Flush() error {
	w.writer.Flush()
	return mapSinkError(w.writer.Error())
}

// mapSinkError distinguishes a consumer-closed sink from genuine write
// failures, so a downstream `head` does not read as a crash.
func mapSinkError(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, io.ErrClosedPipe) {
		return errors.ClosedSinkError{}
	}
	return err
}
