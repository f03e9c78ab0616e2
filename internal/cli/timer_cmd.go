package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/trackdown/internal/cli/formatter"
)

func newTimerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timer SECTION SUBSECTION",
		Short: "Run a work timer for a subsection",
		Long: "Runs a live timer that books one second per second onto the\n" +
			"chosen target, its parents and today's daily work. Press space\n" +
			"to pause, q to save and quit. After 15 minutes without a\n" +
			"keypress the timer pauses itself and rings the bell.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("timer needs an interactive terminal")
			}

			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}

			timer, err := t.StartTimer(args[0], args[1])
			if err != nil {
				return err
			}

			if _, err := tea.NewProgram(newTimerModel(t, timer)).Run(); err != nil {
				return fmt.Errorf("running timer: %w", err)
			}

			// The model stops the timer on quit; Text() already carries
			// the booked seconds.
			t.StopTimer()
			if err := app.saveTracker(path, t); err != nil {
				return err
			}

			fmt.Printf("Logged %s on %q\n", formatter.FormatSeconds(timer.Elapsed()), args[1])
			return nil
		},
	}
}
