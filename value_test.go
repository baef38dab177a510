package tabr

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	require.Equal(t, KindNull, Null().Kind())
	require.True(t, Null().IsNull())
	require.False(t, Bool(true).IsNull())

	require.Equal(t, true, Bool(true).BoolVal())
	require.Equal(t, int64(42), Int(42).IntVal())
	require.Equal(t, 1.5, Float(1.5).FloatVal())
	require.Equal(t, "x", String("x").StringVal())

	seq := Seq(Int(1), String("a"))
	require.Equal(t, KindSeq, seq.Kind())
	require.Len(t, seq.SeqVal(), 2)

	ts := time.Now()
	require.Equal(t, ts, Time(ts).TimeVal())

	err := fmt.Errorf("boom")
	require.Equal(t, err, ErrorValue(err).ErrVal())
}

func TestValueNative(t *testing.T) {
	require.Nil(t, Null().Native())
	require.Equal(t, true, Bool(true).Native())
	require.Equal(t, int64(7), Int(7).Native())
	require.Equal(t, 1.5, Float(1.5).Native())
	require.Equal(t, "x", String("x").Native())
	require.Equal(t, []interface{}{int64(1), "a"}, Seq(Int(1), String("a")).Native())
	require.Equal(t, "boom", ErrorValue(fmt.Errorf("boom")).Native())
}

func TestRowClone(t *testing.T) {
	row := Row{"a", "b"}
	clone := row.Clone()
	require.Equal(t, row, clone)
	clone[0] = "z"
	require.Equal(t, "a", row[0])
}
