package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/probsheet/sheet"
)

func (cli *CLI) showCommand() *cobra.Command {
	var (
		search  string
		details bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the sheet",
		Long: `Show every topic, section and problem with its id and progress.

Searching keeps problems whose title contains the query, plus sections and
topics whose own title matches. Matching ignores case.

Examples:
  sheet show
  sheet show --search "two"
  sheet show --all             # include links and notes
  sheet show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := NewOutputFormatter(format, cmd.OutOrStdout())
			if err != nil {
				return NewValidationError("show sheet", err, CommonSuggestions.RunHelp)
			}

			return cli.withStore("show sheet", func(store *sheet.Store) error {
				s := store.Filter(search)
				if done, err := out.Structured(s); done {
					return err
				}
				writeSheet(cmd.OutOrStdout(), s, details)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show entries whose title contains this text")
	cmd.Flags().BoolVarP(&details, "all", "a", false, "Include problem links and notes")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text|json|yaml)")
	return cmd
}

func (cli *CLI) statsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Long: `Show how many problems are completed, overall and per topic.

Examples:
  sheet stats
  sheet stats --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := NewOutputFormatter(format, cmd.OutOrStdout())
			if err != nil {
				return NewValidationError("show stats", err, CommonSuggestions.RunHelp)
			}

			return cli.withStore("show stats", func(store *sheet.Store) error {
				st := collectStats(store.Sheet())
				if done, err := out.Structured(st); done {
					return err
				}
				writeStats(cmd.OutOrStdout(), st)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text|json|yaml)")
	return cmd
}
