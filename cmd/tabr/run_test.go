package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDelimiter(t *testing.T) {
	d, err := parseDelimiter(",")
	require.Nil(t, err)
	require.Equal(t, ',', d)

	d, err = parseDelimiter("\\t")
	require.Nil(t, err)
	require.Equal(t, '\t', d)

	_, err = parseDelimiter("ab")
	require.NotNil(t, err)
	_, err = parseDelimiter("")
	require.NotNil(t, err)
}

func TestSplitCodeInput(t *testing.T) {
	o := &runOptions{}

	code, input, err := o.splitCodeInput([]string{`num("n") * 2`})
	require.Nil(t, err)
	require.Equal(t, `num("n") * 2`, code)
	require.Equal(t, "-", input)

	code, input, err = o.splitCodeInput([]string{"1", "data.csv"})
	require.Nil(t, err)
	require.Equal(t, "1", code)
	require.Equal(t, "data.csv", input)

	_, _, err = o.splitCodeInput(nil)
	require.NotNil(t, err)
}

func TestSplitCodeInputWithFn(t *testing.T) {
	o := &runOptions{fnFile: "fn.go", fnName: "Double"}

	code, input, err := o.splitCodeInput(nil)
	require.Nil(t, err)
	require.Equal(t, "", code)
	require.Equal(t, "-", input)

	_, input, err = o.splitCodeInput([]string{"data.csv"})
	require.Nil(t, err)
	require.Equal(t, "data.csv", input)

	_, _, err = o.splitCodeInput([]string{"data.csv", "extra"})
	require.NotNil(t, err)
}

func TestParseInitial(t *testing.T) {
	require.Nil(t, parseInitial(""))
	require.Equal(t, float64(0), parseInitial("0"))
	require.Equal(t, float64(1.5), parseInitial("1.5"))
	require.Equal(t, true, parseInitial("true"))
	require.Equal(t, []interface{}{float64(1), float64(2)}, parseInitial("[1,2]"))
	require.Equal(t, map[string]interface{}{"n": float64(1)}, parseInitial(`{"n":1}`))
	// not JSON: kept as a raw string
	require.Equal(t, "hello world", parseInitial("hello world"))
}
