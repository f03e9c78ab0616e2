package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/trackdown/internal/cli/formatter"
	"github.com/alexanderramin/trackdown/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage kanban notes on a subsection",
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteEditCmd(app),
		newNoteMoveCmd(app),
		newNoteRemoveCmd(app),
	)

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "add SECTION SUBSECTION [TEXT]",
		Short: "Add a note",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := domain.ParseNoteStatus(status)
			if !ok {
				return fmt.Errorf("unknown status %q (want todo, in-progress or done)", status)
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			text, err := app.argOrForm(args, 2, "Note Text")
			if err != nil {
				return err
			}
			if err := t.AddNote(args[0], args[1], text, st); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Added note to %q\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(domain.NoteTodo), "Note status (todo, in-progress, done)")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list SECTION SUBSECTION",
		Short: "Show a subsection's notes as a kanban board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := app.loadTracker()
			if err != nil {
				return err
			}
			sec := t.Project().Section(args[0])
			if sec == nil {
				return fmt.Errorf("section %q does not exist", args[0])
			}
			sub := sec.Subsection(args[1])
			if sub == nil {
				return fmt.Errorf("subsection %q does not exist in %q", args[1], args[0])
			}
			fmt.Printf("%s\n", formatter.FormatNotesBoard(args[0], args[1], sub.Notes))
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit SECTION SUBSECTION ID [TEXT]",
		Short: "Rewrite a note's text",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			text, err := app.argOrForm(args, 3, "Note Text")
			if err != nil {
				return err
			}
			if err := t.EditNote(args[0], args[1], id, text); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Updated note %d\n", id)
			return nil
		},
	}
}

func newNoteMoveCmd(app *App) *cobra.Command {
	var pos int

	cmd := &cobra.Command{
		Use:   "move SECTION SUBSECTION ID STATUS",
		Short: "Move a note to another kanban column",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			st, ok := domain.ParseNoteStatus(args[3])
			if !ok {
				return fmt.Errorf("unknown status %q (want todo, in-progress or done)", args[3])
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.MoveNote(args[0], args[1], id, st, pos); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Moved note %d to %s\n", id, st)
			return nil
		},
	}

	cmd.Flags().IntVar(&pos, "pos", 0, "Position within the target column (clamped)")

	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove SECTION SUBSECTION ID",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if !force && app.interactive() {
				if !promptYesNo(fmt.Sprintf("Delete note %d? [y/N] ", id)) {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := t.DeleteNote(args[0], args[1], id); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Removed note %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a number, got %q", s)
	}
	return id, nil
}
