package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-tabr/tabr/logging"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "tabr",
	Short: "transform delimited row streams with Go expressions",
	Long: `tabr reads an ordered stream of delimited rows, applies user-supplied
Go code to each row, and emits a new ordered row stream. Transformations run
sequentially or across parallel workers without changing the output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfig(cmd); err != nil {
			return err
		}
		level := "warn"
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		log = logging.New(os.Stderr, level)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("delimiter", "d", ",", "column delimiter for input and output (\\t for tab)")
	flags.StringP("output", "o", "-", "output destination (- for stdout)")
	flags.IntP("workers", "w", 1, "number of parallel workers (1 runs sequentially)")
	flags.Int("batch-size", 64, "consecutive tasks dispatched to one worker")
	flags.Bool("unordered", false, "release results in completion order instead of input order")
	flags.StringArray("init", nil, "code run once per worker at startup (repeatable)")
	flags.StringArray("before", nil, "code run before each row (repeatable)")
	flags.StringArray("after", nil, "code run after each row (repeatable)")
	flags.StringSliceP("select", "s", nil, "columns visible to the transformation")
	flags.StringArray("arg", nil, "extra argument visible as args (repeatable)")
	flags.Bool("ignore-row-errors", false, "emit the null token for failing rows instead of aborting")
	flags.String("none", "", "token emitted for absent values")
	flags.String("true", "true", "token emitted for boolean true")
	flags.String("false", "false", "token emitted for boolean false")
	flags.String("sep", "|", "separator joining collection elements")
	flags.String("fn", "", "external transformation, as file.go:Name")
	flags.Bool("json", false, "write JSON instead of delimited text")
	flags.Bool("pretty", false, "write pretty-printed JSON")
	flags.Bool("no-header", false, "the input has no header row; address columns by position")
	flags.Bool("jsonl", false, "the input is newline-delimited JSON; --select declares the columns")
	flags.BoolP("verbose", "v", false, "log progress to stderr")
}

// applyConfig fills flags the user left unset from the environment (TABR_*)
// and an optional tabr.yaml, after loading a .env file if one is present.
func applyConfig(cmd *cobra.Command) error {
	_ = godotenv.Load()
	v := viper.New()
	v.SetConfigName("tabr")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tabr")
	v.SetEnvPrefix("TABR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.ReadInConfig() // config file is optional
	var err error
	cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			if e := f.Value.Set(v.GetString(f.Name)); e != nil && err == nil {
				err = e
			}
		}
	})
	return err
}
