package format

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
)

func TestCellDefaults(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, "", Cell(tabr.Null(), opts))
	require.Equal(t, "true", Cell(tabr.Bool(true), opts))
	require.Equal(t, "false", Cell(tabr.Bool(false), opts))
	require.Equal(t, "42", Cell(tabr.Int(42), opts))
	require.Equal(t, "1.5", Cell(tabr.Float(1.5), opts))
	require.Equal(t, "6", Cell(tabr.Float(6), opts))
	require.Equal(t, "abc", Cell(tabr.String("abc"), opts))
	require.Equal(t, "1|2|3", Cell(tabr.Seq(tabr.Int(1), tabr.Int(2), tabr.Int(3)), opts))
	require.Equal(t, "boom", Cell(tabr.ErrorValue(fmt.Errorf("boom")), opts))
}

func TestCellConfiguredTokens(t *testing.T) {
	opts := Options{NullToken: "NULL", TrueToken: "yes", FalseToken: "no", SeqSeparator: ";"}
	require.Equal(t, "NULL", Cell(tabr.Null(), opts))
	require.Equal(t, "yes", Cell(tabr.Bool(true), opts))
	require.Equal(t, "no", Cell(tabr.Bool(false), opts))
	require.Equal(t, "a;b", Cell(tabr.Seq(tabr.String("a"), tabr.String("b")), opts))
}

func TestCellTime(t *testing.T) {
	ts := time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC)
	require.Equal(t, "2021-03-14T15:09:26Z", Cell(tabr.Time(ts), DefaultOptions()))
}

func TestNativeCell(t *testing.T) {
	opts := DefaultOptions()
	opts.KeepNative = true
	require.Nil(t, NativeCell(tabr.Null(), opts))
	require.Equal(t, true, NativeCell(tabr.Bool(true), opts))
	require.Equal(t, int64(42), NativeCell(tabr.Int(42), opts))
	require.Equal(t, 1.5, NativeCell(tabr.Float(1.5), opts))
	require.Equal(t, "x", NativeCell(tabr.String("x"), opts))
	require.Equal(t, []interface{}{int64(1), int64(2)}, NativeCell(tabr.Seq(tabr.Int(1), tabr.Int(2)), opts))

	// kinds with no native JSON representation keep their cell text
	ts := time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC)
	require.Equal(t, "2021-03-14T15:09:26Z", NativeCell(tabr.Time(ts), opts))
	require.Equal(t, "boom", NativeCell(tabr.ErrorValue(fmt.Errorf("boom")), opts))

	// without the mode it is the canonical cell text
	require.Equal(t, "42", NativeCell(tabr.Int(42), DefaultOptions()))
	require.Equal(t, "", NativeCell(tabr.Null(), DefaultOptions()))
}

func TestFromNativeBuiltins(t *testing.T) {
	c := CreateConverter()
	for _, tc := range []struct {
		in   interface{}
		want tabr.Value
	}{
		{nil, tabr.Null()},
		{true, tabr.Bool(true)},
		{42, tabr.Int(42)},
		{int64(7), tabr.Int(7)},
		{1.5, tabr.Float(1.5)},
		{"x", tabr.String("x")},
		{[]interface{}{1, "a"}, tabr.Seq(tabr.Int(1), tabr.String("a"))},
		{[]string{"a", "b"}, tabr.Seq(tabr.String("a"), tabr.String("b"))},
		{[]int{1, 2}, tabr.Seq(tabr.Int(1), tabr.Int(2))},
	} {
		got, err := c.FromNative(tc.in)
		require.Nil(t, err)
		require.Equal(t, tc.want, got)
	}
}

type custom struct{ n int }

func TestFromNativeUnregisteredType(t *testing.T) {
	c := CreateConverter()
	_, err := c.FromNative(custom{n: 1})
	require.IsType(t, errors.SerializationError{}, err)
}

func TestFromNativeCustomHandler(t *testing.T) {
	c := CreateConverter()
	c.Register(reflect.TypeOf(custom{}), func(v interface{}) (tabr.Value, error) {
		return tabr.Int(int64(v.(custom).n)), nil
	})
	got, err := c.FromNative(custom{n: 9})
	require.Nil(t, err)
	require.Equal(t, tabr.Int(9), got)
}

func TestCells(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, []string{"1", "2"}, Cells(tabr.Seq(tabr.Int(1), tabr.Int(2)), opts))
	require.Equal(t, []string{"x"}, Cells(tabr.String("x"), opts))
}

func TestMappedRow(t *testing.T) {
	opts := DefaultOptions()
	vals := map[string]tabr.Value{"a": tabr.Int(1), "b": tabr.Int(2)}
	require.Equal(t, tabr.Row{"2", "1", ""}, MappedRow(vals, []string{"b", "a", "missing"}, opts))
}
