package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/fitprogram/internal/logging"
	"github.com/2beens/fitprogram/internal/program/client"
)

const defaultServer = "http://localhost:9000"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	server   string
	user     string
	logLevel string
	output   string
}

func (o *cliOptions) client() *client.Client {
	return client.New(o.server)
}

func rootCmd() *cobra.Command {
	opts := &cliOptions{}

	server := os.Getenv("FITPROGRAM_SERVER")
	if server == "" {
		server = defaultServer
	}

	cmd := &cobra.Command{
		Use:           "programctl",
		Short:         "Manage fitness programs on a fitprogram server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "json" && opts.output != "yaml" {
				return fmt.Errorf("invalid output format [%s], use json or yaml", opts.output)
			}
			logging.Setup(logging.LoggerSetupParams{
				LogToStdout: true,
				LogLevel:    opts.logLevel,
			})
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "fitprogram server base URL (env FITPROGRAM_SERVER)")
	cmd.PersistentFlags().StringVarP(&opts.user, "user", "u", os.Getenv("FITPROGRAM_USER"), "user id (env FITPROGRAM_USER)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format (json, yaml)")

	cmd.AddCommand(
		createCmd(opts),
		validateCmd(),
		listCmd(opts),
		showCmd(opts),
		templateCmd(opts),
		exportCmd(opts),
		deleteCmd(opts),
		startCmd(opts),
		completeDayCmd(opts),
		undoDayCmd(opts),
		transitionCmd(opts, "pause", "Pause an active program", (*client.Client).Pause),
		transitionCmd(opts, "resume", "Resume a paused program", (*client.Client).Resume),
		transitionCmd(opts, "finish", "Mark a program completed", (*client.Client).Complete),
		transitionCmd(opts, "advance", "Move the program cursor to today", (*client.Client).Advance),
		renameCmd(opts),
		statsCmd(opts),
		historyCmd(opts),
		restCmd(opts),
		todayCmd(opts),
		calendarCmd(opts),
	)

	return cmd
}
