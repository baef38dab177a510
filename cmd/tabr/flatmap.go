package main

import (
	"github.com/spf13/cobra"

	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/operations/transform"
)

var flatmapCmd = &cobra.Command{
	Use:   "flatmap <new-column> <code> [input]",
	Short: "emit one row per element of each row's sequence result",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := getOptions(cmd)
		if err != nil {
			return err
		}
		code, input, err := o.splitCodeInput(args[1:])
		if err != nil {
			return err
		}
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
		action, err := transform.FlatMap(w, source.Schema(), args[0], o.opts)
		if err != nil {
			source.Close()
			return err
		}
		factory := eval.NewFactory(o.evalConfig(code, sel))
		return execute(cmd, o, source, action, factory, closer)
	},
}

func init() {
	rootCmd.AddCommand(flatmapCmd)
}
