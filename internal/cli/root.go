// Package cli provides the command-line interface for baasdoc.
package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/baasdoc/config"
)

type options struct {
	cfgFile string
}

// NewRootCmd builds the baasdoc command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "baasdoc",
		Short: "BaaS API server with a generated OpenAPI document",
		Long: `baasdoc serves a demo BaaS API whose OpenAPI 3.0.3 document is generated
from the Go types of its handlers at startup.

Example:
  baasdoc serve -c baasdoc.yaml         # Run the HTTP server
  baasdoc generate -f json -o api.json  # Write the document without serving
  baasdoc version`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default: defaults and BAASDOC_* environment)")

	cmd.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) load() (*config.Config, error) {
	return config.Load(o.cfgFile)
}

// newLogger builds the process logger from the log config.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
