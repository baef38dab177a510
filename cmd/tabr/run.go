package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/datasource"
	"github.com/go-tabr/tabr/datasource/dsv"
	"github.com/go-tabr/tabr/datasource/file"
	"github.com/go-tabr/tabr/datasource/jsonl"
	"github.com/go-tabr/tabr/engine"
	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/schema"
)

// runOptions carries the common flag values shared by every subcommand.
type runOptions struct {
	delimiter       rune
	output          string
	workers         int
	batchSize       int
	unordered       bool
	ignoreRowErrors bool
	inits           []string
	befores         []string
	afters          []string
	selected        []string
	args            []string
	fnFile          string
	fnName          string
	jsonOut         bool
	prettyOut       bool
	noHeader        bool
	jsonlIn         bool
	opts            format.Options
}

func getOptions(cmd *cobra.Command) (*runOptions, error) {
	flags := cmd.Flags()
	o := &runOptions{}
	var err error
	delim, _ := flags.GetString("delimiter")
	if o.delimiter, err = parseDelimiter(delim); err != nil {
		return nil, err
	}
	o.output, _ = flags.GetString("output")
	o.workers, _ = flags.GetInt("workers")
	o.batchSize, _ = flags.GetInt("batch-size")
	o.unordered, _ = flags.GetBool("unordered")
	o.ignoreRowErrors, _ = flags.GetBool("ignore-row-errors")
	o.inits, _ = flags.GetStringArray("init")
	o.befores, _ = flags.GetStringArray("before")
	o.afters, _ = flags.GetStringArray("after")
	o.selected, _ = flags.GetStringSlice("select")
	o.args, _ = flags.GetStringArray("arg")
	o.jsonOut, _ = flags.GetBool("json")
	o.prettyOut, _ = flags.GetBool("pretty")
	o.noHeader, _ = flags.GetBool("no-header")
	o.jsonlIn, _ = flags.GetBool("jsonl")
	fn, _ := flags.GetString("fn")
	if fn != "" {
		parts := strings.SplitN(fn, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("--fn must have the form file.go:Name")
		}
		o.fnFile, o.fnName = parts[0], parts[1]
	}
	o.opts = format.DefaultOptions()
	o.opts.NullToken, _ = flags.GetString("none")
	o.opts.TrueToken, _ = flags.GetString("true")
	o.opts.FalseToken, _ = flags.GetString("false")
	o.opts.SeqSeparator, _ = flags.GetString("sep")
	// the JSON sink represents booleans and numbers natively
	o.opts.KeepNative = o.jsonOut || o.prettyOut
	return o, nil
}

func parseDelimiter(s string) (rune, error) {
	if s == "\\t" {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character")
	}
	return runes[0], nil
}

// openReader opens the input location as a row stream.
func (o *runOptions) openReader(location string) (datasource.Reader, error) {
	in, err := file.Open(location)
	if err != nil {
		return nil, err
	}
	if o.jsonlIn {
		if len(o.selected) == 0 {
			in.Close()
			return nil, fmt.Errorf("--jsonl requires --select to declare the columns")
		}
		return jsonl.CreateReader(in, &jsonl.ReaderConf{Columns: o.selected})
	}
	return dsv.CreateReader(in, &dsv.ReaderConf{Delimiter: o.delimiter, NoHeader: o.noHeader})
}

// openWriter opens the output destination in the selected format.
func (o *runOptions) openWriter() (datasource.Writer, io.Closer, error) {
	out, err := file.Create(o.output)
	if err != nil {
		return nil, nil, err
	}
	if o.jsonOut || o.prettyOut {
		return dsv.CreateJSONWriter(out, o.prettyOut), out, nil
	}
	w := dsv.CreateWriter(out, &dsv.WriterConf{Delimiter: o.delimiter, NoHeader: o.noHeader})
	return w, out, nil
}

// selection resolves the columns visible to the transformation.
func (o *runOptions) selection(s *schema.Schema) (*schema.Selection, error) {
	return s.Select(o.selected...)
}

// evalConfig assembles the transformation code for a run.
func (o *runOptions) evalConfig(main string, sel *schema.Selection) eval.Config {
	return eval.Config{
		Main:      main,
		Init:      o.inits,
		Before:    o.befores,
		After:     o.afters,
		FuncFile:  o.fnFile,
		FuncName:  o.fnName,
		FuncArgs:  o.selected,
		Args:      o.args,
		Selection: sel,
	}
}

// execute runs the engine under interrupt handling and releases resources.
func execute(cmd *cobra.Command, o *runOptions, source datasource.Reader, action tabr.Action, factory tabr.TransformationFactory, closers ...io.Closer) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := &engine.Config{
		Source:          source,
		Action:          action,
		Factory:         factory,
		Workers:         o.workers,
		BatchSize:       o.batchSize,
		Unordered:       o.unordered,
		IgnoreRowErrors: o.ignoreRowErrors,
		Log:             log,
	}
	_, err := cfg.Run(ctx)
	source.Close()
	for _, c := range closers {
		c.Close()
	}
	return err
}

// splitCodeInput resolves the trailing positional arguments of a subcommand
// expecting user code and an optional input location. With --fn the code
// argument is omitted.
func (o *runOptions) splitCodeInput(args []string) (code string, input string, err error) {
	if o.fnFile != "" {
		switch len(args) {
		case 0:
			return "", "-", nil
		case 1:
			return "", args[0], nil
		default:
			return "", "", fmt.Errorf("unexpected argument %q", args[1])
		}
	}
	switch len(args) {
	case 1:
		return args[0], "-", nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("transformation code is required")
	}
}
