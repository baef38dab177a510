package jsonl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabr/tabr"
)

func readerOver(t *testing.T, data string, columns ...string) *Reader {
	r, err := CreateReader(io.NopCloser(strings.NewReader(data)), &ReaderConf{Columns: columns})
	require.Nil(t, err)
	return r
}

func TestReaderProjectsColumns(t *testing.T) {
	data := `{"name":"alice","age":30,"city":"berlin"}
{"name":"bob","age":25}
`
	r := readerOver(t, data, "name", "age")
	require.Equal(t, []string{"name", "age"}, r.Schema().Names())

	row, err := r.Next()
	require.Nil(t, err)
	require.Equal(t, tabr.Row{"alice", "30"}, row)

	// missing values project as empty cells
	row, err = r.Next()
	require.Nil(t, err)
	require.Equal(t, tabr.Row{"bob", "25"}, row)

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestReaderNestedPaths(t *testing.T) {
	data := `{"user":{"name":"alice"},"tags":["a","b"]}
`
	r := readerOver(t, data, "user.name", "tags.0")
	row, err := r.Next()
	require.Nil(t, err)
	require.Equal(t, tabr.Row{"alice", "a"}, row)
}

func TestReaderSkipsBlankLines(t *testing.T) {
	data := "{\"n\":1}\n\n{\"n\":2}\n"
	r := readerOver(t, data, "n")
	row, err := r.Next()
	require.Nil(t, err)
	require.Equal(t, tabr.Row{"1"}, row)
	row, err = r.Next()
	require.Nil(t, err)
	require.Equal(t, tabr.Row{"2"}, row)
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestReaderRequiresColumns(t *testing.T) {
	_, err := CreateReader(io.NopCloser(strings.NewReader("")), &ReaderConf{Columns: []string{"a", "a"}})
	require.NotNil(t, err)
}
