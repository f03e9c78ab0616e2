package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubsectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Aliases: []string{"subsection"},
		Short:   "Manage subsections within a section",
	}

	cmd.AddCommand(
		newSubAddCmd(app),
		newSubRenameCmd(app),
		newSubRemoveCmd(app),
		newSubMoveCmd(app),
		newSubColorCmd(app),
	)

	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add SECTION [TITLE]",
		Short: "Add a subsection to a section",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			title, err := app.argOrForm(args, 1, "Subsection Title")
			if err != nil {
				return err
			}
			if err := t.AddSubsection(args[0], title); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Added subsection %q under %q\n", title, args[0])
			return nil
		},
	}
}

func newSubRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SECTION OLD NEW",
		Short: "Rename a subsection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.RenameSubsection(args[0], args[1], args[2]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Renamed subsection %q to %q\n", args[1], args[2])
			return nil
		},
	}
}

func newSubRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove SECTION TITLE",
		Short: "Remove a subsection and its notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if !force && app.interactive() {
				if !promptYesNo(fmt.Sprintf("Delete %q and all its notes? [y/N] ", args[1])) {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := t.DeleteSubsection(args[0], args[1]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Removed subsection %q\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func newSubMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move SECTION TITLE up|down",
		Short: "Move a subsection within its section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.MoveSubsection(args[0], args[1], dir); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Moved subsection %q %s\n", args[1], args[2])
			return nil
		},
	}
}

func newSubColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color SECTION TITLE HEX",
		Short: "Set a subsection's color",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.SetSubsectionColor(args[0], args[1], args[2]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Recolored subsection %q\n", args[1])
			return nil
		},
	}
}
