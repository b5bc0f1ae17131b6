package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/types"
)

func (cli *CLI) problemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Add, edit, toggle, remove and reorder problems within a section",
	}

	cmd.AddCommand(
		cli.problemAddCommand(),
		cli.problemEditCommand(),
		&cobra.Command{
			Use:   "toggle <topic-id> <section-id> <problem-id>",
			Short: "Flip a problem between solved and unsolved",
			Long: `Flip the completed flag of a problem.

Examples:
  sheet problem toggle t1 st1 q2`,
			Args: cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("toggle problem", func(store *sheet.Store) error {
					if err := store.ToggleProblemStatus(args[0], args[1], args[2]); err != nil {
						return err
					}
					s := store.Sheet()
					p := findProblem(s, args[0], args[1], args[2])
					state := "⬜ Not done"
					if p.Completed {
						state = "☑️  Done"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s  (%s)\n", state, p.Title, statsLine(sheet.ComputeStats(s)))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <topic-id> <section-id> <problem-id>",
			Aliases: []string{"delete"},
			Short:   "Remove a problem",
			Args:    cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("remove problem", func(store *sheet.Store) error {
					if err := store.DeleteProblem(args[0], args[1], args[2]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Problem removed: %s\n", args[2])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "move <topic-id> <section-id> <from> <to>",
			Short: "Move a problem to another position within its section",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.withStore("move problem", func(store *sheet.Store) error {
					n := problemCount(store.Sheet(), args[0], args[1])
					if n < 0 {
						return fmt.Errorf("section %q in topic %q: %w", args[1], args[0], sheet.ErrNotFound)
					}
					from, to, err := parsePositions(args[2], args[3], n)
					if err != nil {
						return NewValidationError("move problem", err, CommonSuggestions.CheckPosition)
					}
					if err := store.ReorderProblems(args[0], args[1], from, to); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "↕️  Problem moved: %s -> %s\n", args[2], args[3])
					return nil
				})
			},
		},
	)
	return cmd
}

func (cli *CLI) problemAddCommand() *cobra.Command {
	var url, difficulty, notes string

	cmd := &cobra.Command{
		Use:   "add <topic-id> <section-id> <title>",
		Short: "Append a problem to a section",
		Long: `Append a new, unsolved problem to the end of a section.

Examples:
  sheet problem add t1 st1 "Valid Palindrome" --url https://leetcode.com/problems/valid-palindrome/
  sheet problem add t2 st2 "Trapping Rain Water" --url https://leetcode.com/problems/trapping-rain-water/ --difficulty hard`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := problemFields(args[2], url, difficulty, notes)
			if err != nil {
				return NewValidationError("add problem", err)
			}
			return cli.withStore("add problem", func(store *sheet.Store) error {
				id, err := store.AddProblem(args[0], args[1], fields)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Problem added: %s (%s) [%s]\n", fields.Title, fields.Difficulty, id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Link to the problem statement (required)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "D", string(types.Easy), "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func (cli *CLI) problemEditCommand() *cobra.Command {
	var title, url, difficulty, notes string
	var completed bool

	cmd := &cobra.Command{
		Use:   "edit <topic-id> <section-id> <problem-id>",
		Short: "Change fields of a problem",
		Long: `Change the fields given as flags; everything else is kept.

Examples:
  sheet problem edit t1 st1 q1 --title "Two Sum II"
  sheet problem edit t2 st2 q3 --difficulty hard --notes "sort first"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch types.ProblemPatch

			if flags.Changed("title") {
				t, err := validation.Title("problem", title)
				if err != nil {
					return NewValidationError("edit problem", err)
				}
				patch.Title = &t
			}
			if flags.Changed("url") {
				u, err := validation.URL(url)
				if err != nil {
					return NewValidationError("edit problem", err)
				}
				patch.URL = &u
			}
			if flags.Changed("difficulty") {
				d, err := validation.Difficulty(difficulty)
				if err != nil {
					return NewValidationError("edit problem", err)
				}
				patch.Difficulty = &d
			}
			if flags.Changed("notes") {
				n, err := validation.Notes(notes)
				if err != nil {
					return NewValidationError("edit problem", err)
				}
				patch.Notes = &n
			}
			if flags.Changed("completed") {
				patch.Completed = &completed
			}
			if patch.IsEmpty() {
				return &CLIError{
					Operation:   "edit problem",
					Cause:       "nothing to change",
					Suggestions: []string{"Pass at least one of --title, --url, --difficulty, --notes or --completed"},
				}
			}

			return cli.withStore("edit problem", func(store *sheet.Store) error {
				if err := store.EditProblem(args[0], args[1], args[2], patch); err != nil {
					return err
				}
				p := findProblem(store.Sheet(), args[0], args[1], args[2])
				fmt.Fprintf(cmd.OutOrStdout(), "✏️  Problem updated: %s (%s) [%s]\n", p.Title, p.Difficulty, p.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&url, "url", "u", "", "New link")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "D", "", "New difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes (empty string clears them)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Set the completed flag explicitly")
	return cmd
}

// problemFields validates the user supplied fields of a new problem
func problemFields(title, url, difficulty, notes string) (types.ProblemFields, error) {
	t, err := validation.Title("problem", title)
	if err != nil {
		return types.ProblemFields{}, err
	}
	u, err := validation.URL(url)
	if err != nil {
		return types.ProblemFields{}, err
	}
	d, err := validation.Difficulty(difficulty)
	if err != nil {
		return types.ProblemFields{}, err
	}
	n, err := validation.Notes(notes)
	if err != nil {
		return types.ProblemFields{}, err
	}
	return types.ProblemFields{Title: t, URL: u, Difficulty: d, Notes: n}, nil
}

// findProblem looks up a problem the caller knows exists
func findProblem(s types.Sheet, topicID, sectionID, problemID string) types.Problem {
	ti := s.FindTopic(topicID)
	if ti < 0 {
		return types.Problem{}
	}
	si := s.Topics[ti].FindSection(sectionID)
	if si < 0 {
		return types.Problem{}
	}
	pi := s.Topics[ti].Sections[si].FindProblem(problemID)
	if pi < 0 {
		return types.Problem{}
	}
	return s.Topics[ti].Sections[si].Problems[pi]
}
