package main

import (
	"github.com/spf13/cobra"

	"github.com/go-tabr/tabr/eval"
	"github.com/go-tabr/tabr/operations/transform"
)

var filterCmd = &cobra.Command{
	Use:   "filter <code> [input]",
	Short: "keep only the rows whose result is true",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := getOptions(cmd)
		if err != nil {
			return err
		}
		code, input, err := o.splitCodeInput(args)
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
		action, err := transform.Filter(w, source.Schema())
		if err != nil {
			source.Close()
			return err
		}
		factory := eval.NewFactory(o.evalConfig(code, sel))
		return execute(cmd, o, source, action, factory, closer)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
