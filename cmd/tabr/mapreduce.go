package main

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/operations/agg"
)

var mapReduceCmd = &cobra.Command{
	Use:   "map-reduce <row-code> <combiner-code> [input]",
	Short: "fold every row's result into a single accumulator",
	Long: `map-reduce evaluates row-code against every row and folds the results
left to right with combiner-code, an expression over acc (the accumulator so
far) and v (the current result), starting from --initial. Exactly one row is
emitted at stream end, projected onto columns named by --cols or
auto-named col1..colN.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := getOptions(cmd)
		if err != nil {
			return err
		}
		input := "-"
		if len(args) == 3 {
			input = args[2]
		}
		combiner, err := eval.NewCombiner(args[1])
		if err != nil {
			return err
		}
		initialRaw, _ := cmd.Flags().GetString("initial")
		cols, _ := cmd.Flags().GetStringSlice("cols")
		source, err := o.openReader(input)
		if err != nil {
			return err
		}
		w, closer, err := o.openWriter()
		if err != nil {
			source.Close()
			return err
		}
		sel, err := o.selection(source.Schema())
		if err != nil {
			source.Close()
			return err
		}
		action := agg.Reduce(w, combiner, parseInitial(initialRaw), cols, format.CreateConverter(), o.opts)
		factory := eval.NewFactory(o.evalConfig(args[0], sel))
		return execute(cmd, o, source, action, factory, closer)
	},
}

// parseInitial interprets --initial as a JSON scalar, array or object,
// falling back to a raw string when it is not valid JSON.
func parseInitial(raw string) interface{} {
	if raw == "" {
		return nil
	}
	if gjson.Valid(raw) {
		return gjson.Parse(raw).Value()
	}
	return raw
}

func init() {
	mapReduceCmd.Flags().String("initial", "", "initial accumulator, as JSON")
	mapReduceCmd.Flags().StringSlice("cols", nil, "names for the output columns")
	rootCmd.AddCommand(mapReduceCmd)
}
