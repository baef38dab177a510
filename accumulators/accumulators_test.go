package accumulators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/schema"
)

func TestCounter(t *testing.T) {
	c := Counter()
	require.Equal(t, tabr.Int(0), c.Value())
	for i := 0; i < 3; i++ {
		require.Nil(t, c.Accumulate(tabr.Row{"x"}))
	}
	require.Equal(t, tabr.Int(3), c.Value())
}

func TestAdder(t *testing.T) {
	s, err := schema.CreateSchema([]string{"a", "n"})
	require.Nil(t, err)
	a, err := Adder(s, "n")
	require.Nil(t, err)

	require.Nil(t, a.Accumulate(tabr.Row{"x", "1.5"}))
	require.Nil(t, a.Accumulate(tabr.Row{"y", " 2 "}))
	require.Equal(t, tabr.Float(3.5), a.Value())

	require.NotNil(t, a.Accumulate(tabr.Row{"z", "nope"}))
}

func TestAdderUnknownColumn(t *testing.T) {
	s, err := schema.CreateSchema([]string{"a"})
	require.Nil(t, err)
	_, err = Adder(s, "missing")
	require.NotNil(t, err)
}

func TestCollector(t *testing.T) {
	s, err := schema.CreateSchema([]string{"name"})
	require.Nil(t, err)
	c, err := Collector(s, "name")
	require.Nil(t, err)

	require.Nil(t, c.Accumulate(tabr.Row{"alice"}))
	require.Nil(t, c.Accumulate(tabr.Row{"bob"}))
	require.Equal(t, tabr.Seq(tabr.String("alice"), tabr.String("bob")), c.Value())
}
