// Package cli implements the vindecode command line tool: a one-shot VIN
// decoder that talks to the provider directly and keeps the API-Ninjas key
// in a small YAML file between runs.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/spf13/cobra"
)

var version = "dev" // set by the linker

type options struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds a fresh command tree; tests create one per case.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "vindecode",
		Short:         "Decode Vehicle Identification Numbers",
		Long:          "vindecode validates a VIN and decodes it through API-Ninjas or the NHTSA vPIC service.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.vindecode.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log provider requests to stderr")

	cmd.AddCommand(newDecodeCmd(opts))
	cmd.AddCommand(newKeyCmd(opts))

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

// printError writes the single user-facing line for err.
func printError(w io.Writer, err error) {
	msg := err.Error()
	if _, ok := application.IsServiceError(err); ok {
		msg = application.UserMessage(err)
	}
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
