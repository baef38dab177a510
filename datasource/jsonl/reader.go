// Package jsonl reads newline-delimited JSON streams as rows. Columns are
// located lazily within each line of JSON using their column name, which
// should be a gjson path; values which do not correspond to a declared
// column are ignored.
package jsonl

import (
	"bufio"
	"io"

	"github.com/tidwall/gjson"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/schema"
)

// ReaderConf configures a JSONL Reader
type ReaderConf struct {
	// Columns lists the gjson paths to project from each line, in output
	// order. JSONL streams carry no header, so the columns must be declared.
	Columns []string
}

// Reader produces rows from newline-delimited JSON data
type Reader struct {
	conf   *ReaderConf
	in     io.ReadCloser
	lines  *bufio.Scanner
	schema *schema.Schema
}

// CreateReader returns a new JSONL Reader
func CreateReader(in io.ReadCloser, conf *ReaderConf) (*Reader, error) {
	s, err := schema.CreateSchema(conf.Columns)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{conf: conf, in: in, lines: scanner, schema: s}, nil
}

// Schema returns the header index for this stream
func (r *Reader) Schema() *schema.Schema {
	return r.schema
}

// Next returns the next row of the stream, or io.EOF after the final line
func (r *Reader) Next() (tabr.Row, error) {
	for r.lines.Scan() {
		line := r.lines.Text()
		if len(line) == 0 {
			continue
		}
		row := make(tabr.Row, len(r.conf.Columns))
		for i, path := range r.conf.Columns {
			row[i] = gjson.Get(line, path).String()
		}
		return row, nil
	}
	if err := r.lines.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close releases the underlying input
func (r *Reader) Close() error {
	return r.in.Close()
}
