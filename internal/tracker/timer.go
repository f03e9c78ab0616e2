package tracker

import (
	"fmt"

	"github.com/alexanderramin/trackdown/internal/domain"
)

// Timer accumulates seconds into one subsection. At most one timer is
// active per Tracker; seconds are written straight into the shared
// model, so a second concurrent timer would double-count.
type Timer struct {
	sectionTitle string
	subTitle     string
	section      *domain.Section
	sub          *domain.Subsection
	seconds      int
	running      bool
}

// Section returns the timed section's title.
func (tm *Timer) Section() string { return tm.sectionTitle }

// Subsection returns the timed subsection's title.
func (tm *Timer) Subsection() string { return tm.subTitle }

// Elapsed returns the seconds accumulated by this run.
func (tm *Timer) Elapsed() int { return tm.seconds }

// Running reports whether the timer is still ticking.
func (tm *Timer) Running() bool { return tm.running }

// StartTimer begins timing a subsection. Any previously active timer
// is stopped (and its state persisted) before the new one starts, so
// no tick is ever counted twice.
func (t *Tracker) StartTimer(section, subsection string) (*Timer, error) {
	s := t.project.Section(section)
	if s == nil {
		return nil, fmt.Errorf("section %q not found", section)
	}
	sub := s.Subsection(subsection)
	if sub == nil {
		return nil, fmt.Errorf("subsection %q not found in %q", subsection, section)
	}

	if t.active != nil {
		t.stopActive()
		t.sync()
	}
	t.active = &Timer{
		sectionTitle: section,
		subTitle:     subsection,
		section:      s,
		sub:          sub,
		running:      true,
	}
	return t.active, nil
}

// Tick advances the active timer by one second, incrementing the
// subsection, its section, the project total and today's histogram
// entry in lockstep. Without an active timer it is a no-op.
func (t *Tracker) Tick() {
	if t.active == nil || !t.active.running {
		return
	}
	t.active.seconds++
	t.active.sub.TotalTimeSeconds++
	t.active.section.TotalTimeSeconds++
	t.project.TotalTimeSeconds++
	today := t.clock().Format("2006-01-02")
	if t.project.DailyWork == nil {
		t.project.DailyWork = map[string]int{}
	}
	t.project.DailyWork[today]++
}

// StopTimer stops the active timer, if any, and re-serializes so the
// accumulated seconds land in the document text.
func (t *Tracker) StopTimer() {
	if t.active == nil {
		return
	}
	t.stopActive()
	t.sync()
}

// stopActive clears the active timer without serializing.
func (t *Tracker) stopActive() {
	t.active.running = false
	t.active = nil
}

// ActiveTimer returns the running timer, or nil.
func (t *Tracker) ActiveTimer() *Timer {
	return t.active
}
