// Package testutil holds shared fixtures for building projects and
// documents in tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/trackdown/internal/domain"
)

var testNoteIDCounter atomic.Int64

// NextNoteID returns a process-unique note ID for fixtures.
func NextNoteID() int64 {
	return 1700000000000 + testNoteIDCounter.Add(1)
}

// Project options

type ProjectOption func(*domain.Project)

func WithTotalTime(seconds int) ProjectOption {
	return func(p *domain.Project) {
		p.TotalTimeSeconds = seconds
	}
}

func WithDailyWork(date string, seconds int) ProjectOption {
	return func(p *domain.Project) {
		p.DailyWork[date] = seconds
	}
}

func WithTimeline(start, end string) ProjectOption {
	return func(p *domain.Project) {
		p.TimelineStart = &start
		p.TimelineEnd = &end
	}
}

func WithEvent(id int64, date, note string) ProjectOption {
	return func(p *domain.Project) {
		p.Events = append(p.Events, domain.Event{ID: id, Date: date, Note: note})
	}
}

func WithSection(s *domain.Section) ProjectOption {
	return func(p *domain.Project) {
		p.Sections = append(p.Sections, s)
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := domain.NewProject(name)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Section options

type SectionOption func(*domain.Section)

func WithSectionTime(seconds int) SectionOption {
	return func(s *domain.Section) {
		s.TotalTimeSeconds = seconds
	}
}

func WithSectionColor(hex string) SectionOption {
	return func(s *domain.Section) {
		s.Color = hex
	}
}

func WithSubsection(sub *domain.Subsection) SectionOption {
	return func(s *domain.Section) {
		s.Subsections = append(s.Subsections, sub)
	}
}

func NewTestSection(title string, opts ...SectionOption) *domain.Section {
	s := &domain.Section{Title: title}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subsection options

type SubsectionOption func(*domain.Subsection)

func WithSubTime(seconds int) SubsectionOption {
	return func(sub *domain.Subsection) {
		sub.TotalTimeSeconds = seconds
	}
}

func WithSubColor(hex string) SubsectionOption {
	return func(sub *domain.Subsection) {
		sub.Color = hex
	}
}

func WithNote(n domain.Note) SubsectionOption {
	return func(sub *domain.Subsection) {
		sub.Notes = append(sub.Notes, n)
	}
}

func NewTestSubsection(title string, opts ...SubsectionOption) *domain.Subsection {
	sub := &domain.Subsection{Title: title}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// NewTestNote builds a structured note with a fixture ID.
func NewTestNote(text string, status domain.NoteStatus) domain.Note {
	return domain.Note{
		ID:        NextNoteID(),
		Text:      text,
		Timestamp: "1/1/24, 10:00:00 AM",
		Status:    status,
	}
}

// Document builds a markdown document from heading/body pairs, the way
// the serializer lays one out. Useful for parser tests that need
// hand-shaped input without string soup at the call site.
type Document struct {
	b strings.Builder
}

func NewDocument(name string) *Document {
	d := &Document{}
	d.b.WriteString(fmt.Sprintf("# %s\n\nTime: 0\n\nDailyWork: {}\n\n", name))
	return d
}

func (d *Document) Raw(lines ...string) *Document {
	for _, l := range lines {
		d.b.WriteString(l + "\n")
	}
	return d
}

func (d *Document) Section(title string, seconds int, color string) *Document {
	d.b.WriteString(fmt.Sprintf("\n## %s\n\nTime: %d\n", title, seconds))
	if color != "" {
		d.b.WriteString("Color: " + color + "\n")
	}
	d.b.WriteString("\n")
	return d
}

func (d *Document) Subsection(title string, seconds int, color string) *Document {
	d.b.WriteString(fmt.Sprintf("### %s\n\nTime: %d\n", title, seconds))
	if color != "" {
		d.b.WriteString("Color: " + color + "\n")
	}
	d.b.WriteString("\n")
	return d
}

func (d *Document) Notes(lines ...string) *Document {
	d.b.WriteString("**Notes:**\n")
	for _, l := range lines {
		d.b.WriteString(l + "\n")
	}
	d.b.WriteString("\n")
	return d
}

func (d *Document) String() string {
	return d.b.String()
}
