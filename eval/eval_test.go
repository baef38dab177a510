package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
	"github.com/go-tabr/tabr/schema"
)

func selection(t *testing.T, names ...string) *schema.Selection {
	s, err := schema.CreateSchema(names)
	require.Nil(t, err)
	sel, err := s.Select()
	require.Nil(t, err)
	return sel
}

func build(t *testing.T, cfg Config) tabr.Transformation {
	tr, err := NewFactory(cfg)(0)
	require.Nil(t, err)
	return tr
}

func task(index uint64, cells ...string) tabr.Task {
	return tabr.Task{Index: index, Row: tabr.Row(cells)}
}

func TestMainExpression(t *testing.T) {
	tr := build(t, Config{Main: `num("n") * 2`, Selection: selection(t, "n")})
	result, err := tr.Eval(task(0, "2"))
	require.Nil(t, err)
	require.Equal(t, float64(4), result)
}

func TestMainStringExpression(t *testing.T) {
	tr := build(t, Config{Main: `cell("name") + "!"`, Selection: selection(t, "name")})
	result, err := tr.Eval(task(0, "alice"))
	require.Nil(t, err)
	require.Equal(t, "alice!", result)
}

func TestMainBooleanExpression(t *testing.T) {
	tr := build(t, Config{Main: `num("n") > 1`, Selection: selection(t, "n")})
	result, err := tr.Eval(task(0, "1"))
	require.Nil(t, err)
	require.Equal(t, false, result)

	result, err = tr.Eval(task(1, "2"))
	require.Nil(t, err)
	require.Equal(t, true, result)
}

func TestMainSequenceExpression(t *testing.T) {
	tr := build(t, Config{Main: `[]interface{}{cell("n"), cell("n")}`, Selection: selection(t, "n")})
	result, err := tr.Eval(task(0, "x"))
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x", "x"}, result)
}

func TestArgsBinding(t *testing.T) {
	tr := build(t, Config{Main: `cell("n") + args[0]`, Args: []string{"?"}, Selection: selection(t, "n")})
	result, err := tr.Eval(task(0, "a"))
	require.Nil(t, err)
	require.Equal(t, "a?", result)
}

func TestIndexBinding(t *testing.T) {
	tr := build(t, Config{Main: `index`, Selection: selection(t, "n")})
	result, err := tr.Eval(task(7, "x"))
	require.Nil(t, err)
	require.Equal(t, 7, result)
}

func TestInitAndBeforeShareState(t *testing.T) {
	tr := build(t, Config{
		Init:      []string{`count := 0`},
		Before:    []string{`count = count + 1`},
		Main:      `count`,
		Selection: selection(t, "n"),
	})
	for want := 1; want <= 3; want++ {
		tk := task(uint64(want-1), "x")
		require.Nil(t, tr.Before(tk))
		result, err := tr.Eval(tk)
		require.Nil(t, err)
		require.Equal(t, want, result)
	}
}

func TestAfterSeesResult(t *testing.T) {
	tr := build(t, Config{
		Init:      []string{`last := ""`},
		Main:      `cell("n")`,
		After:     []string{`last = result.(string)`},
		Selection: selection(t, "n"),
	})
	tk := task(0, "hello")
	result, err := tr.Eval(tk)
	require.Nil(t, err)
	require.Nil(t, tr.After(tk, result))

	// subsequent main code observes the mutation
	tr2 := build(t, Config{
		Init:      []string{`last := "start"`},
		Main:      `last + "/" + cell("n")`,
		After:     []string{`last = cell("n")`},
		Selection: selection(t, "n"),
	})
	result, err = tr2.Eval(task(0, "a"))
	require.Nil(t, err)
	require.Equal(t, "start/a", result)
	require.Nil(t, tr2.After(task(0, "a"), result))
	result, err = tr2.Eval(task(1, "b"))
	require.Nil(t, err)
	require.Equal(t, "a/b", result)
}

func TestWorkersDoNotShareState(t *testing.T) {
	factory := NewFactory(Config{
		Init:      []string{`count := 0`},
		Before:    []string{`count = count + 1`},
		Main:      `count`,
		Selection: selection(t, "n"),
	})
	a, err := factory(0)
	require.Nil(t, err)
	b, err := factory(1)
	require.Nil(t, err)

	tk := task(0, "x")
	require.Nil(t, a.Before(tk))
	require.Nil(t, a.Before(tk))
	result, err := a.Eval(tk)
	require.Nil(t, err)
	require.Equal(t, 2, result)

	require.Nil(t, b.Before(tk))
	result, err = b.Eval(tk)
	require.Nil(t, err)
	require.Equal(t, 1, result)
}

func TestUnknownColumnFailsRow(t *testing.T) {
	tr := build(t, Config{Main: `cell("missing")`, Selection: selection(t, "n")})
	_, err := tr.Eval(task(3, "x"))
	require.NotNil(t, err)
	var evalErr errors.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	require.EqualValues(t, 3, evalErr.Index)
	require.IsType(t, errors.UnknownColumnError{}, evalErr.Cause)
}

func TestNonNumericCellFailsRow(t *testing.T) {
	tr := build(t, Config{Main: `num("n") + 1`, Selection: selection(t, "n")})
	_, err := tr.Eval(task(0, "abc"))
	var evalErr errors.EvaluationError
	require.ErrorAs(t, err, &evalErr)
}

func TestCompileErrorFailsConstruction(t *testing.T) {
	_, err := NewFactory(Config{Main: `not valid go ((`, Selection: selection(t, "n")})(0)
	require.NotNil(t, err)
}

func TestInitErrorFailsConstruction(t *testing.T) {
	_, err := NewFactory(Config{Init: []string{`x := undefinedName`}, Main: `1`, Selection: selection(t, "n")})(0)
	require.NotNil(t, err)
}

func TestExternalFunction(t *testing.T) {
	src := `package main

import "strconv"

func Double(args ...string) interface{} {
	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		panic(err)
	}
	return n * 2
}
`
	path := filepath.Join(t.TempDir(), "double.go")
	require.Nil(t, os.WriteFile(path, []byte(src), 0644))

	tr := build(t, Config{
		FuncFile:  path,
		FuncName:  "Double",
		FuncArgs:  []string{"n"},
		Selection: selection(t, "n"),
	})
	result, err := tr.Eval(task(0, "21"))
	require.Nil(t, err)
	require.Equal(t, float64(42), result)
}

func TestExternalFunctionMissingName(t *testing.T) {
	src := "package main\n\nfunc Other(args ...string) interface{} { return nil }\n"
	path := filepath.Join(t.TempDir(), "fn.go")
	require.Nil(t, os.WriteFile(path, []byte(src), 0644))

	_, err := NewFactory(Config{
		FuncFile:  path,
		FuncName:  "Nope",
		Selection: selection(t, "n"),
	})(0)
	require.NotNil(t, err)
}

func TestCombinerSum(t *testing.T) {
	combine, err := NewCombiner(`f(acc) + f(v)`)
	require.Nil(t, err)

	acc := interface{}(float64(0))
	for _, n := range []int64{1, 2, 3} {
		acc, err = combine(acc, n)
		require.Nil(t, err)
	}
	require.Equal(t, float64(6), acc)
}

func TestCombinerStringConcat(t *testing.T) {
	combine, err := NewCombiner(`s(acc) + s(v)`)
	require.Nil(t, err)
	acc, err := combine("a", "b")
	require.Nil(t, err)
	require.Equal(t, "ab", acc)
}

func TestCombinerCoercionFailure(t *testing.T) {
	combine, err := NewCombiner(`f(acc) + f(v)`)
	require.Nil(t, err)
	_, err = combine(float64(0), struct{}{})
	require.NotNil(t, err)
}

func TestAggregatorCount(t *testing.T) {
	agg, err := NewAggregator(`count`)
	require.Nil(t, err)
	result, err := agg([]map[string]string{{"n": "1"}, {"n": "2"}})
	require.Nil(t, err)
	require.Equal(t, 2, result)
}

func TestAggregatorSumAndMean(t *testing.T) {
	agg, err := NewAggregator(`sum("n")`)
	require.Nil(t, err)
	result, err := agg([]map[string]string{{"n": "1"}, {"n": "2"}, {"n": "3"}})
	require.Nil(t, err)
	require.Equal(t, float64(6), result)

	agg, err = NewAggregator(`mean("n")`)
	require.Nil(t, err)
	result, err = agg([]map[string]string{{"n": "1"}, {"n": "3"}})
	require.Nil(t, err)
	require.Equal(t, float64(2), result)
}

func TestAggregatorMapping(t *testing.T) {
	agg, err := NewAggregator(`map[string]interface{}{"count": count, "total": sum("n")}`)
	require.Nil(t, err)
	result, err := agg([]map[string]string{{"n": "2"}, {"n": "3"}})
	require.Nil(t, err)
	require.Equal(t, map[string]interface{}{"count": 2, "total": float64(5)}, result)
}

func TestAggregatorNonNumericColumn(t *testing.T) {
	agg, err := NewAggregator(`sum("n")`)
	require.Nil(t, err)
	_, err = agg([]map[string]string{{"n": "abc"}})
	require.NotNil(t, err)
}
