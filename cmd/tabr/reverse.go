package main

import (
	"github.com/spf13/cobra"

	"github.com/go-tabr/tabr/operations/transform"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse [input]",
	Short: "emit all rows in last-to-first order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := getOptions(cmd)
		if err != nil {
			return err
		}
		input := "-"
		if len(args) == 1 {
			input = args[0]
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
		action, err := transform.Reverse(w, source.Schema())
		if err != nil {
			source.Close()
			return err
		}
		// no transformation: a nil factory skips evaluation entirely
		return execute(cmd, o, source, action, nil, closer)
	},
}

func init() {
	rootCmd.AddCommand(reverseCmd)
}
