package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/baasdoc/server"
)

type generateOptions struct {
	output string
	format string
}

func newGenerateCmd(opts *options) *cobra.Command {
	gen := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the OpenAPI document",
		Long: `Build the OpenAPI document of the server without listening and write it
to a file or to stdout. The format defaults to the output file extension,
then to yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			format, err := gen.resolveFormat()
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, newLogger(cmd.ErrOrStderr(), cfg.Log))
			if err != nil {
				return err
			}

			doc := srv.Document()
			var data []byte
			if format == "json" {
				data, err = doc.JSON()
			} else {
				data, err = doc.YAML()
			}
			if err != nil {
				return err
			}

			if gen.output == "" || gen.output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(gen.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", gen.output, err)
			}
			cmd.Printf("Wrote %s (%d operations)\n", gen.output, doc.OperationCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&gen.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVarP(&gen.format, "format", "f", "", "output format: yaml, json")

	return cmd
}

func (g *generateOptions) resolveFormat() (string, error) {
	format := strings.ToLower(g.format)
	if format == "" {
		switch strings.ToLower(filepath.Ext(g.output)) {
		case ".json":
			format = "json"
		default:
			format = "yaml"
		}
	}

	switch format {
	case "json", "yaml":
		return format, nil
	case "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unsupported format %q, must be one of: yaml, json", g.format)
}
