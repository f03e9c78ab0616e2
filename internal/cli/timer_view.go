package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/trackdown/internal/cli/formatter"
	"github.com/alexanderramin/trackdown/internal/tracker"
)

// autoPauseAfter is how long a timer may run without any keypress
// before it pauses itself and rings the terminal bell.
const autoPauseAfter = 15 * 60

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// timerModel runs one work timer inside the terminal. Every second it
// books one second onto the timed subsection, its section, the project
// total and today's daily work.
type timerModel struct {
	tracker *tracker.Tracker
	timer   *tracker.Timer
	spin    spinner.Model

	paused   bool
	pinged   bool
	idle     int
	quitting bool
}

func newTimerModel(t *tracker.Tracker, timer *tracker.Timer) timerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorGreen)

	return timerModel{
		tracker: t,
		timer:   timer,
		spin:    sp,
	}
}

func (m timerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd())
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.tracker.StopTimer()
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			m.pinged = false
			m.idle = 0
			return m, nil
		default:
			// Any other key counts as activity.
			m.idle = 0
			if m.pinged {
				m.pinged = false
				m.paused = false
			}
			return m, nil
		}

	case tickMsg:
		if !m.paused {
			m.tracker.Tick()
			m.idle++
			if m.idle >= autoPauseAfter {
				m.paused = true
				m.pinged = true
			}
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	target := m.timer.Section()
	if sub := m.timer.Subsection(); sub != "" {
		target += " / " + sub
	}

	indicator := m.spin.View()
	state := ""
	if m.paused {
		indicator = formatter.StyleYellow.Render("⏸")
		state = formatter.StyleYellow.Render(" (paused)")
	}

	b.WriteString(fmt.Sprintf("%s %s%s\n", indicator, formatter.Bold(target), state))
	b.WriteString(fmt.Sprintf("  %s\n", formatter.StyleGreen.Render(formatter.FormatClock(m.timer.Elapsed()))))

	if m.pinged {
		// \a rings the bell so an absent user notices the pause.
		b.WriteString("\a" + formatter.StyleRed.Render("  Still working? Press any key to resume.") + "\n")
	}
	b.WriteString(formatter.Dim("  space pause · q save and quit") + "\n")

	return b.String()
}
