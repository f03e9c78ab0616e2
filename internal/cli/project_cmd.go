package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/trackdown/internal/cli/formatter"
	"github.com/alexanderramin/trackdown/internal/store"
	"github.com/alexanderramin/trackdown/internal/tracker"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new NAME",
		Short: "Create a new project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			path := app.filePath
			if path == "" {
				path = app.DefaultPath
			}
			if path == "" {
				path = name + ".md"
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			t, err := tracker.New(name)
			if err != nil {
				return err
			}
			if err := store.Save(path, t.Text()); err != nil {
				return err
			}

			fmt.Printf("Created project %q in %s\n", name, path)
			return nil
		},
	}
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the project overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := app.loadTracker()
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatOverview(t.Project()))
			return nil
		},
	}
}

func newDailyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show the daily work histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := app.loadTracker()
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatDailyWork(t.Project().DailyWork))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [DIR]",
		Short: "Export the document under its heading-derived name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := app.loadTracker()
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dest := filepath.Join(dir, store.ExportName(t.Text(), t.Project().Name))
			if err := store.Save(dest, t.Text()); err != nil {
				return err
			}

			fmt.Printf("Exported to %s\n", dest)
			return nil
		},
	}
}
