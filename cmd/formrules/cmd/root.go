package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-formrules/framework/config"
)

// errFailed makes the process exit 1 without printing an extra error line.
var errFailed = errors.New("validation failed")

// options holds the global flags shared by all subcommands.
type options struct {
	envFile   string
	logLevel  string
	logFormat string
}

// loadConfig reads the environment and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "formrules",
		Short: "formrules - declarative form validation",
		Long: `formrules validates form input against declarative rule sets.

Rule sets are read from a YAML file (VALIDATION_RULES_FILE or --rules):

  sets:
    signup:
      email: "required|email"
      password: "required|min_length:7|confirmed"

Use "check" to validate input from the command line and "serve" to expose
every rule set over HTTP at POST /validate/{set}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default: .env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, console) (default: json)")

	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
