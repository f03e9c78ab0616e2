package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trackdown/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage the project timeline and its events",
	}

	cmd.AddCommand(
		newTimelineShowCmd(app),
		newTimelineSetCmd(app),
		newTimelineEventsCmd(app),
	)

	return cmd
}

func newTimelineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the timeline range and events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := app.loadTracker()
			if err != nil {
				return err
			}

			p := t.Project()
			var b strings.Builder
			start, end := "not set", "not set"
			if p.TimelineStart != nil {
				start = *p.TimelineStart
			}
			if p.TimelineEnd != nil {
				end = *p.TimelineEnd
			}
			b.WriteString(fmt.Sprintf("%s %s\n", formatter.Bold("Range:"), formatter.Dim(start+" .. "+end)))
			if len(p.Events) == 0 {
				b.WriteString(formatter.Dim("No events.") + "\n")
			}
			for _, ev := range p.Events {
				b.WriteString(fmt.Sprintf("  %d  %s  %s\n", ev.ID, ev.Date, ev.Note))
			}
			fmt.Print(b.String())
			return nil
		},
	}
}

func newTimelineSetCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the timeline range (no flags picks a default window)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, path, err := app.loadTracker()
			if err != nil {
				return err
			}

			if start == "" && end == "" {
				t.EnsureTimelineDefaults()
			} else if err := t.SetTimelineRange(start, end); err != nil {
				return err
			}
			if err := app.saveTracker(path, t); err != nil {
				return err
			}

			fmt.Println("Timeline updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, empty clears)")

	return cmd
}

func newTimelineEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage timeline events",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add DATE NOTE",
			Short: "Add a timeline event",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, path, err := app.loadTracker()
				if err != nil {
					return err
				}
				if err := t.AddEvent(args[0], args[1]); err != nil {
					return err
				}
				if err := app.saveTracker(path, t); err != nil {
					return err
				}
				fmt.Printf("Added event on %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove ID",
			Short: "Remove a timeline event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				t, path, err := app.loadTracker()
				if err != nil {
					return err
				}
				if err := t.RemoveEvent(id); err != nil {
					return err
				}
				if err := app.saveTracker(path, t); err != nil {
					return err
				}
				fmt.Printf("Removed event %d\n", id)
				return nil
			},
		},
	)

	return cmd
}
