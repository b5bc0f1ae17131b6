package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/sheet/export"
	"github.com/arthur-debert/probsheet/types"
)

func (cli *CLI) exportCommand() *cobra.Command {
	var kind, docFormat, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sheet to a file",
		Long: `Export the sheet as JSON, YAML or a zip archive.

The archive holds sheet.json plus one document per problem, laid out as
<topic>/<section>/<problem> in sheet order. Documents are rendered with
--doc-format.

Examples:
  sheet export --format json -o backup.json
  sheet export --format yaml
  sheet export --format archive --doc-format markdown -o sheet.zip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" && output != "" {
				guessed, err := export.KindFromPath(output)
				if err != nil {
					return NewValidationError("export sheet", err, "Pass --format explicitly")
				}
				kind = guessed
			}
			if kind == "" {
				kind = export.KindJSON
			}

			return cli.withStore("export sheet", func(store *sheet.Store) error {
				s := store.Sheet()

				if kind == export.KindArchive {
					if output == "" {
						return NewValidationError("export sheet", fmt.Errorf("archive export needs an output file"), "Pass -o sheet.zip")
					}
					format, err := formats.Get(docFormat)
					if err != nil {
						return NewValidationError("export sheet", err)
					}
					if err := export.Archive(s, format, output); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "📦 Exported %d problems to %s\n", sheet.ComputeStats(s).Total, output)
					return nil
				}

				if output == "" {
					return export.Sheet(s, kind, cmd.OutOrStdout())
				}
				return writeExportFile(s, kind, output)
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "format", "f", "", fmt.Sprintf("Export format (%s); guessed from -o when omitted", strings.Join(export.Kinds, "|")))
	cmd.Flags().StringVar(&docFormat, "doc-format", formats.PlainText.Name, fmt.Sprintf("Problem document format inside archives (%s)", strings.Join(formats.List(), "|")))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func writeExportFile(s types.Sheet, kind, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return export.Sheet(s, kind, f)
}

func (cli *CLI) importCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all topics with those from an export",
		Long: `Replace every topic, section and problem with the contents of an export
file. The sheet title is kept. Files with missing or duplicate ids are
rejected and nothing changes.

Examples:
  sheet import backup.json
  sheet import sheet.zip
  sheet import - --format yaml < sheet.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if kind == "" {
				guessed, err := export.KindFromPath(path)
				if err != nil {
					return NewValidationError("import sheet", err, "Pass --format explicitly")
				}
				kind = guessed
			}

			imported, err := readImport(path, kind, cmd.InOrStdin())
			if err != nil {
				return NewStoreError("import sheet", err, "Check the file was written by 'sheet export'")
			}

			return cli.withStore("import sheet", func(store *sheet.Store) error {
				if err := store.ReplaceAll(imported.Topics); err != nil {
					return err
				}
				st := sheet.ComputeStats(imported)
				fmt.Fprintf(cmd.OutOrStdout(), "📥 Imported %d topics, %d problems (%d completed)\n", len(imported.Topics), st.Total, st.Completed)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "format", "f", "", fmt.Sprintf("Import format (%s); guessed from the file name when omitted", strings.Join(export.Kinds, "|")))
	return cmd
}

// readImport loads an export from path, or from stdin when path is "-"
func readImport(path, kind string, stdin io.Reader) (types.Sheet, error) {
	if kind == export.KindArchive {
		return export.ReadArchive(path)
	}

	if path == "-" {
		return export.Read(stdin, kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return types.Sheet{}, err
	}
	defer func() { _ = f.Close() }()
	return export.Read(f, kind)
}
