// Package dsv reads and writes delimiter-separated row streams.
package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/schema"
)

// ReaderConf configures a DSV Reader
type ReaderConf struct {
	Delimiter rune // The delimiter separating columns. Defaults to ,
	Comment   rune // Lines beginning with the comment character are ignored. Defaults to no comment character.
	NoHeader  bool // When true, the first row is data and columns are addressable only by position
}

// Reader produces rows from DSV data, assigning indices in read order and
// enforcing the stream's width
type Reader struct {
	conf    *ReaderConf
	in      io.ReadCloser
	reader  *csv.Reader
	schema  *schema.Schema
	pending tabr.Row // first data row of a headerless stream, buffered during schema synthesis
	next    uint64
}

// CreateReader returns a new DSV Reader. The stream's Schema is built
// immediately from the header row, or synthesized from the width of the
// first data row when the stream is headerless.
func CreateReader(in io.ReadCloser, conf *ReaderConf) (*Reader, error) {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	reader := csv.NewReader(in)
	reader.Comma = conf.Delimiter
	reader.Comment = conf.Comment
	reader.FieldsPerRecord = -1 // width is enforced here, with a typed error
	first, err := reader.Read()
	if err == io.EOF {
		return &Reader{conf: conf, in: in, reader: reader, schema: schema.CreateAnonymousSchema(0)}, nil
	}
	if err != nil {
		return nil, err
	}
	r := &Reader{conf: conf, in: in, reader: reader}
	if conf.NoHeader {
		r.schema = schema.CreateAnonymousSchema(len(first))
		r.pending = tabr.Row(first).Clone()
	} else {
		s, err := schema.CreateSchema(first)
		if err != nil {
			return nil, err
		}
		r.schema = s
	}
	return r, nil
}

// Schema returns the header index for this stream
func (r *Reader) Schema() *schema.Schema {
	return r.schema
}

// Next returns the next row of the stream, or io.EOF after the final row
func (r *Reader) Next() (tabr.Row, error) {
	if r.pending != nil {
		row := r.pending
		r.pending = nil
		r.next++
		return row, nil
	}
	rec, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	row := tabr.Row(rec).Clone()
	if err := r.schema.Validate(r.next, row); err != nil {
		return nil, err
	}
	r.next++
	return row, nil
}

// Close releases the underlying input
func (r *Reader) Close() error {
	return r.in.Close()
}
