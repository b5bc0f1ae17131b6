package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/sheet"
)

func (cli *CLI) topicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Add, rename, remove and reorder topics",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <title>",
			Short: "Append a topic",
			Long: `Append a new, empty topic to the end of the sheet.

Examples:
  sheet topic add "Sliding Window"`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := validation.Title("topic", args[0])
				if err != nil {
					return NewValidationError("add topic", err)
				}
				return cli.withStore("add topic", func(store *sheet.Store) error {
					id, err := store.AddTopic(title)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✅ Topic added: %s [%s]\n", title, id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "edit <topic-id> <title>",
			Short: "Rename a topic",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := validation.Title("topic", args[1])
				if err != nil {
					return NewValidationError("edit topic", err)
				}
				return cli.withStore("edit topic", func(store *sheet.Store) error {
					if err := store.EditTopic(args[0], title); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✏️  Topic renamed: %s [%s]\n", title, args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <topic-id>",
			Aliases: []string{"delete"},
			Short:   "Remove a topic with all its sections and problems",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("remove topic", func(store *sheet.Store) error {
					if err := store.DeleteTopic(args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Topic removed: %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <from> <to>",
			Short: "Move a topic to another position",
			Long: `Move the topic at position <from> to position <to>. Positions start at 1
and follow the order printed by 'sheet show'.

Examples:
  sheet topic move 1 3`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("move topic", func(store *sheet.Store) error {
					from, to, err := parsePositions(args[0], args[1], len(store.Sheet().Topics))
					if err != nil {
						return NewValidationError("move topic", err, CommonSuggestions.CheckPosition)
					}
					if err := store.ReorderTopics(from, to); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "↕️  Topic moved: %s -> %s\n", args[0], args[1])
					return nil
				})
			},
		},
	)
	return cmd
}
