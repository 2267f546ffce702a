package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-formrules/framework/app"
	"github.com/km-arc/go-formrules/framework/logging"
)

func newServeCommand(opts *options) *cobra.Command {
	var (
		host  string
		port  int
		rules string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the validation HTTP server",
		Long: `Start an HTTP server that validates request bodies against rule sets.

Endpoints:
  GET  /sets            list the loaded rule sets
  POST /validate/{set}  validate a JSON, multipart or urlencoded body
  POST /forms/{set}     same check, 204 No Content when it passes

Messages follow ?lang= or Accept-Language.

Failed validation answers 422 with {"errors": {"field": ["message"]}}.
The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if host != "" {
				cfg.App.Host = host
			}
			if port != 0 {
				cfg.App.Port = port
			}
			if rules != "" {
				cfg.Validation.RulesFile = rules
			}

			logger := logging.New(cfg.Log, os.Stdout)
			logger.Info().Str("version", app.Version).Msg("starting formrules server")

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "server host address (default: APP_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "server port (default: APP_PORT)")
	cmd.Flags().StringVar(&rules, "rules", "", "rule set file (default: VALIDATION_RULES_FILE)")
	return cmd
}
