// Package eval compiles user-supplied Go code into Transformations using the
// yaegi interpreter. One interpreter exists per worker and doubles as the
// worker's binding store: variables declared by init code live in the
// interpreter's global scope, where before, main and after code can read and
// mutate them for the lifetime of the worker. Nothing is shared between
// workers; a pool of N workers runs init N times.
//
// Main code is a Go expression evaluated with the following bindings:
//
//	index int                     // the row's stable index
//	cells map[string]string      // the selected columns, by name
//	cell func(name string) string // like cells[name], but failing the row on unknown names
//	num func(name string) float64 // cell parsed as a float, failing the row when unparseable
//	args []string                 // caller-declared extra arguments
//
// Before and after code are statement blocks with the same bindings; after
// code additionally sees result interface{}, the just-produced main result.
package eval

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/go-tabr/tabr"
	errors "github.com/go-tabr/tabr/errors"
	"github.com/go-tabr/tabr/schema"
)

// rowFn is the compiled shape of main code.
type rowFn func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string) interface{}

// hookFn is the compiled shape of before code.
type hookFn func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string)

// afterFn is the compiled shape of after code.
type afterFn func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string, result interface{})

// extFn is the required shape of an externally supplied function.
type extFn func(args ...string) interface{}

// Config describes the code making up a Transformation.
type Config struct {
	Main      string   // the main expression; mutually exclusive with FuncFile
	Init      []string // init code, run once per worker at construction, in order
	Before    []string // before code, run per row ahead of Main, in order
	After     []string // after code, run per row behind Main, in order
	FuncFile  string   // path of a Go source file supplying the transformation
	FuncName  string   // name of the function within FuncFile
	FuncArgs  []string // column names bound positionally to the function's arguments
	Args      []string // caller-declared extra arguments, visible as `args`
	Selection *schema.Selection
}

// NewFactory returns a TransformationFactory for the given Config. Each
// invocation of the factory builds an independent interpreter, runs the init
// code once, and compiles the hook and main code against it.
func NewFactory(cfg Config) tabr.TransformationFactory {
	return func(worker int) (tabr.Transformation, error) {
		return create(cfg)
	}
}

type transformation struct {
	cfg    Config
	interp *interp.Interpreter
	before []hookFn
	after  []afterFn
	main   rowFn
	ext    extFn
}

func create(cfg Config) (*transformation, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, err
	}
	t := &transformation{cfg: cfg, interp: i}
	for _, code := range cfg.Init {
		if _, err := i.Eval(code); err != nil {
			return nil, fmt.Errorf("init code failed: %w", err)
		}
	}
	for _, code := range cfg.Before {
		fn, err := compileHook(i, code)
		if err != nil {
			return nil, fmt.Errorf("before code failed to compile: %w", err)
		}
		t.before = append(t.before, fn)
	}
	switch {
	case cfg.FuncFile != "":
		fn, err := loadFunction(i, cfg.FuncFile, cfg.FuncName)
		if err != nil {
			return nil, err
		}
		t.ext = fn
	default:
		fn, err := compileMain(i, cfg.Main)
		if err != nil {
			return nil, fmt.Errorf("transformation code failed to compile: %w", err)
		}
		t.main = fn
	}
	for _, code := range cfg.After {
		fn, err := compileAfter(i, code)
		if err != nil {
			return nil, fmt.Errorf("after code failed to compile: %w", err)
		}
		t.after = append(t.after, fn)
	}
	return t, nil
}

func compileMain(i *interp.Interpreter, code string) (rowFn, error) {
	src := fmt.Sprintf(`(func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string) interface{} {
	return (%s)
})`, code)
	v, err := i.Eval(src)
	if err != nil {
		return nil, err
	}
	fn, ok := v.Interface().(func(int, map[string]string, func(string) string, func(string) float64, []string) interface{})
	if !ok {
		return nil, fmt.Errorf("transformation code did not compile to a row function")
	}
	return rowFn(fn), nil
}

func compileHook(i *interp.Interpreter, code string) (hookFn, error) {
	src := fmt.Sprintf(`(func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string) {
	%s
})`, code)
	v, err := i.Eval(src)
	if err != nil {
		return nil, err
	}
	fn, ok := v.Interface().(func(int, map[string]string, func(string) string, func(string) float64, []string))
	if !ok {
		return nil, fmt.Errorf("hook code did not compile to a hook function")
	}
	return hookFn(fn), nil
}

func compileAfter(i *interp.Interpreter, code string) (afterFn, error) {
	src := fmt.Sprintf(`(func(index int, cells map[string]string, cell func(string) string, num func(string) float64, args []string, result interface{}) {
	%s
})`, code)
	v, err := i.Eval(src)
	if err != nil {
		return nil, err
	}
	fn, ok := v.Interface().(func(int, map[string]string, func(string) string, func(string) float64, []string, interface{}))
	if !ok {
		return nil, fmt.Errorf("after code did not compile to a hook function")
	}
	return afterFn(fn), nil
}

var packageClause = regexp.MustCompile(`(?m)^package\s+(\w+)`)

// loadFunction evaluates a Go source file in the interpreter and resolves the
// named function, which must have the signature func(args ...string) interface{}.
func loadFunction(i *interp.Interpreter, path string, name string) (extFn, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("function source %s failed to compile: %w", path, err)
	}
	ref := name
	if m := packageClause.FindStringSubmatch(string(src)); m != nil && m[1] != "main" {
		ref = m[1] + "." + name
	}
	v, err := i.Eval(ref)
	if err != nil {
		return nil, fmt.Errorf("function %s not found in %s: %w", name, path, err)
	}
	fn, ok := v.Interface().(func(...string) interface{})
	if !ok {
		return nil, fmt.Errorf("function %s must have signature func(args ...string) interface{}", name)
	}
	return extFn(fn), nil
}

// bindings builds the per-row binding values handed to compiled code.
func (t *transformation) bindings(task tabr.Task) (map[string]string, func(string) string, func(string) float64) {
	cells := t.cfg.Selection.Project(task.Row)
	cell := func(name string) string {
		v, ok := cells[name]
		if !ok {
			panic(errors.UnknownColumnError{Name: name})
		}
		return v
	}
	num := func(name string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(cell(name)), 64)
		if err != nil {
			panic(fmt.Errorf("column %s is not numeric: %w", name, err))
		}
		return f
	}
	return cells, cell, num
}

// Before runs the before hooks against a task, in declaration order.
func (t *transformation) Before(task tabr.Task) error {
	if len(t.before) == 0 {
		return nil
	}
	cells, cell, num := t.bindings(task)
	return protect(task.Index, func() {
		for _, fn := range t.before {
			fn(int(task.Index), cells, cell, num, t.cfg.Args)
		}
	})
}

// Eval evaluates the main code (or invokes the external function) against a
// task.
func (t *transformation) Eval(task tabr.Task) (result interface{}, err error) {
	cells, cell, num := t.bindings(task)
	err = protect(task.Index, func() {
		if t.ext != nil {
			vals := make([]string, len(t.cfg.FuncArgs))
			for i, name := range t.cfg.FuncArgs {
				vals[i] = cell(name)
			}
			result = t.ext(vals...)
		} else {
			result = t.main(int(task.Index), cells, cell, num, t.cfg.Args)
		}
	})
	return result, err
}

// After runs the after hooks against a task and its result, in declaration
// order.
func (t *transformation) After(task tabr.Task, result interface{}) error {
	if len(t.after) == 0 {
		return nil
	}
	cells, cell, num := t.bindings(task)
	return protect(task.Index, func() {
		for _, fn := range t.after {
			fn(int(task.Index), cells, cell, num, t.cfg.Args, result)
		}
	})
}

// protect converts panics out of interpreted code into EvaluationErrors
// carrying the offending row index.
func protect(index uint64, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = errors.EvaluationError{Index: index, Cause: cause}
		}
	}()
	fn()
	return nil
}
