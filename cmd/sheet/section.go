package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/sheet"
)

func (cli *CLI) sectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Add, rename, remove and reorder sections within a topic",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <topic-id> <title>",
			Short: "Append a section to a topic",
			Long: `Append a new, empty section to the end of a topic.

Examples:
  sheet section add t1 "Prefix Sums"`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := validation.Title("section", args[1])
				if err != nil {
					return NewValidationError("add section", err)
				}
				return cli.withStore("add section", func(store *sheet.Store) error {
					id, err := store.AddSection(args[0], title)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✅ Section added: %s [%s]\n", title, id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "edit <topic-id> <section-id> <title>",
			Short: "Rename a section",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := validation.Title("section", args[2])
				if err != nil {
					return NewValidationError("edit section", err)
				}
				return cli.withStore("edit section", func(store *sheet.Store) error {
					if err := store.EditSection(args[0], args[1], title); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✏️  Section renamed: %s [%s]\n", title, args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <topic-id> <section-id>",
			Aliases: []string{"delete"},
			Short:   "Remove a section and its problems",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("remove section", func(store *sheet.Store) error {
					if err := store.DeleteSection(args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Section removed: %s\n", args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <topic-id> <from> <to>",
			Short: "Move a section to another position within its topic",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("move section", func(store *sheet.Store) error {
					n := sectionCount(store.Sheet(), args[0])
					if n < 0 {
						return fmt.Errorf("topic %q: %w", args[0], sheet.ErrNotFound)
					}
					from, to, err := parsePositions(args[1], args[2], n)
					if err != nil {
						return NewValidationError("move section", err, CommonSuggestions.CheckPosition)
					}
					if err := store.ReorderSections(args[0], from, to); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "↕️  Section moved: %s -> %s\n", args[1], args[2])
					return nil
				})
			},
		},
	)
	return cmd
}
