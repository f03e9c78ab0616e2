package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trackdown/internal/store"
	"github.com/alexanderramin/trackdown/internal/tracker"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the wiring CLI commands need: where the document lives and
// whether a human is attached to the terminal.
type App struct {
	// DefaultPath is the document path from the environment, used when
	// --file is not given.
	DefaultPath string

	// IsInteractive reports whether prompts and forms may be shown.
	IsInteractive func() bool

	filePath string
}

// NewRootCmd creates the top-level "trackdown" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "trackdown",
		Short: "Markdown-backed project tracker",
		Long: "trackdown keeps a project plan, kanban notes and work timers\n" +
			"in a single human-editable markdown document.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addFileFlag(root.PersistentFlags(), app)

	root.AddCommand(
		newNewCmd(app),
		newInfoCmd(app),
		newDailyCmd(app),
		newExportCmd(app),
		newSectionCmd(app),
		newSubsectionCmd(app),
		newNoteCmd(app),
		newTimelineCmd(app),
		newTimerCmd(app),
	)

	return root
}

func addFileFlag(fs *pflag.FlagSet, app *App) {
	fs.StringVarP(&app.filePath, "file", "f", "", "Path to the project markdown file (default $TRACKDOWN_FILE)")
}

// documentPath resolves the document location from the flag or the
// environment.
func (app *App) documentPath() (string, error) {
	if app.filePath != "" {
		return app.filePath, nil
	}
	if app.DefaultPath != "" {
		return app.DefaultPath, nil
	}
	return "", fmt.Errorf("no project file given (use --file or set TRACKDOWN_FILE)")
}

// loadTracker reads and parses the document. Parsing is lenient: any
// readable file yields a tracker.
func (app *App) loadTracker() (*tracker.Tracker, string, error) {
	path, err := app.documentPath()
	if err != nil {
		return nil, "", err
	}
	text, err := store.Load(path)
	if err != nil {
		return nil, "", err
	}
	return tracker.Load(text), path, nil
}

// saveTracker persists the tracker's current text.
func (app *App) saveTracker(path string, t *tracker.Tracker) error {
	return store.Save(path, t.Text())
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// argOrForm returns the value from args at idx, or prompts for it with
// a huh form when the terminal is interactive. Empty input is rejected
// by the form itself; in non-interactive mode a missing argument is an
// error.
func (app *App) argOrForm(args []string, idx int, title string) (string, error) {
	if idx < len(args) {
		return strings.TrimSpace(args[idx]), nil
	}
	if !app.interactive() {
		return "", fmt.Errorf("missing %s argument", strings.ToLower(title))
	}
	return runTextForm(title)
}
