package main

import (
	"github.com/spf13/cobra"

	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/format"
	"github.com/go-tabr/tabr/operations/agg"
)

var groupByCmd = &cobra.Command{
	Use:   "groupby <key-code> <aggregate-code> [input]",
	Short: "partition rows by key-code and aggregate each group",
	Long: `groupby evaluates key-code against every row and buffers rows per
distinct serialized key. At stream end aggregate-code, an expression over
rows, count, sum and mean, runs once per group. One row is emitted per
distinct key: the key under the column "group", then the aggregate projected
onto columns named by --cols or auto-named col1..colN.`,
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
		aggregator, err := eval.NewAggregator(args[1])
		if err != nil {
			return err
		}
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
		action := agg.GroupBy(w, aggregator, sel, cols, format.CreateConverter(), o.opts)
		factory := eval.NewFactory(o.evalConfig(args[0], sel))
		return execute(cmd, o, source, action, factory, closer)
	},
}

func init() {
	groupByCmd.Flags().StringSlice("cols", nil, "names for the aggregate output columns")
	rootCmd.AddCommand(groupByCmd)
}
