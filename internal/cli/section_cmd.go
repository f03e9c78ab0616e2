package cli

import (
	"fmt"

	"github.com/alexanderramin/trackdown/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage top-level sections",
	}

	cmd.AddCommand(
		newSectionAddCmd(app),
		newSectionRenameCmd(app),
		newSectionRemoveCmd(app),
		newSectionMoveCmd(app),
		newSectionColorCmd(app),
	)

	return cmd
}

func newSectionAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add a section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			title, err := app.argOrForm(args, 0, "Section Title")
			if err != nil {
				return err
			}
			if err := t.AddSection(title); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Added section %q\n", title)
			return nil
		},
	}
}

func newSectionRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.RenameSection(args[0], args[1]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Renamed section %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newSectionRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove TITLE",
		Short: "Remove a section and its subsections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if !force && app.interactive() {
				if !promptYesNo(fmt.Sprintf("Delete %q and all its subsections? [y/N] ", args[0])) {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := t.DeleteSection(args[0]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Removed section %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func newSectionMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move TITLE up|down",
		Short: "Move a section within the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[1])
			if err != nil {
				return err
			}
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.MoveSection(args[0], dir); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Moved section %q %s\n", args[0], args[1])
			return nil
		},
	}
}

func newSectionColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color TITLE HEX",
		Short: "Set a section's color (subsections get matching shades)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}
			if err := t.SetSectionColor(args[0], args[1]); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}
			fmt.Printf("Recolored section %q\n", args[0])
			return nil
		},
	}
}

func parseDirection(s string) (domain.MoveDirection, error) {
	switch s {
	case "up":
		return domain.MoveUp, nil
	case "down":
		return domain.MoveDown, nil
	default:
		return "", fmt.Errorf("direction must be up or down, got %q", s)
	}
}
