// Package importer loads a full export of another board into the store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/converters"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import users, projects, tasks, comments and notifications",
		Long: `Import an export file. Exported IDs are remapped to new ones; records
that point at missing parents are skipped and listed. Field names may use
the exporter's spellings (title_c, due_date_c, ...).

The format comes from the file extension (.json, .yaml, .yml) unless
--format is given. Use - to read stdin, which needs --format.

Examples:
  tablero import backup.json
  cat export.yaml | tablero import - --format=yaml --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("format", "", "Input format: json or yaml")
	cli.AddOutputFlags(cmd)
	return cmd
}

// formatFor picks the explicit format, or the one the file extension implies
func formatFor(path, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "json", "yaml", "yml":
		return ext, nil
	}
	return "", &cli.CodedError{
		Code: cli.ExitUsage,
		Err:  fmt.Errorf("cannot tell the format of %q; pass --format", path),
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		explicit, _ := cmd.Flags().GetString("format")
		format, err := formatFor(args[0], explicit)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()
			in = file
		}

		ds, err := converters.Decode(in, format)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrDataFormat, err)
		}

		sum, err := converters.Import(ctx, c.App.Repo(), ds)
		if err != nil {
			if errors.Is(err, converters.ErrMissingField) {
				err = fmt.Errorf("%w: %w", cli.ErrDataFormat, err)
			}
			return fmt.Errorf("import stopped after %s: %w", describe(sum), err)
		}

		return f.Result("imported", sum, func(w io.Writer) error {
			fmt.Fprintf(w, "✓ Imported %s\n", describe(sum))
			if len(sum.Skipped) > 0 {
				fmt.Fprintf(w, "Skipped %d records:\n", len(sum.Skipped))
				for _, s := range sum.Skipped {
					fmt.Fprintf(w, "  - %s\n", s)
				}
			}
			return nil
		})
	})
}

func describe(s converters.Summary) string {
	return fmt.Sprintf("%d users, %d projects, %d tasks, %d comments, %d notifications",
		s.Users, s.Projects, s.Tasks, s.Comments, s.Notifications)
}
