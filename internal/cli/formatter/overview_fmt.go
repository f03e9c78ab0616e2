package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/trackdown/internal/domain"
)

// FormatOverview renders the whole project: totals, timeline, and the
// section tree with per-heading times and kanban counts.
func FormatOverview(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOTAL"), StyleFg.Render(FormatSeconds(p.TotalTimeSeconds))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RANGE"), timelineRange(p)))
	if len(p.Events) > 0 {
		b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("EVENTS"), len(p.Events)))
	}

	if len(p.Sections) > 0 {
		b.WriteString("\n")
		b.WriteString(buildSectionTree(p))
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func buildSectionTree(p *domain.Project) string {
	var b strings.Builder
	for si, s := range p.Sections {
		connector := "├─"
		childPrefix := "│  "
		if si == len(p.Sections)-1 {
			connector = "└─"
			childPrefix = "   "
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			Dim(connector),
			ColorSwatch(s.Color),
			Bold(s.Title),
			Dim(FormatSeconds(s.TotalTimeSeconds))))

		for bi, sub := range s.Subsections {
			subConnector := "├─"
			if bi == len(s.Subsections)-1 {
				subConnector = "└─"
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s %s %s\n",
				Dim(childPrefix),
				Dim(subConnector),
				ColorSwatch(sub.Color),
				StyleFg.Render(sub.Title),
				Dim(FormatSeconds(sub.TotalTimeSeconds)),
				kanbanCounts(sub.Notes)))
		}
	}
	return b.String()
}

// kanbanCounts summarizes a note list as todo/in-progress/done counts.
func kanbanCounts(notes []domain.Note) string {
	if len(notes) == 0 {
		return ""
	}
	var todo, inProgress, done int
	for _, n := range notes {
		switch n.Status {
		case domain.NoteInProgress:
			inProgress++
		case domain.NoteDone:
			done++
		default:
			todo++
		}
	}
	return Dim(fmt.Sprintf("[%d/%d/%d]", todo, inProgress, done))
}

// FormatNotesBoard renders a subsection's notes grouped by column.
func FormatNotesBoard(section, subsection string, notes []domain.Note) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(section+" / "+subsection) + "\n")

	for _, status := range []domain.NoteStatus{domain.NoteTodo, domain.NoteInProgress, domain.NoteDone} {
		b.WriteString("\n" + NoteStatusPill(status) + "\n")
		empty := true
		for _, n := range notes {
			if noteColumn(n) != status {
				continue
			}
			empty = false
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				Dim(fmt.Sprintf("#%d", n.ID)),
				StyleFg.Render(noteText(n)),
				Dim("("+n.Timestamp+")")))
		}
		if empty {
			b.WriteString(Dim("  —") + "\n")
		}
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

// noteColumn buckets unknown statuses into todo so every note is shown.
func noteColumn(n domain.Note) domain.NoteStatus {
	if domain.ValidNoteStatuses[n.Status] {
		return n.Status
	}
	return domain.NoteTodo
}

func noteText(n domain.Note) string {
	if !n.Structured() {
		return n.Raw
	}
	return n.Text
}

// FormatDailyWork renders the histogram newest-first, with a simple
// intensity bar scaled against four hours of work.
func FormatDailyWork(dailyWork map[string]int) string {
	if len(dailyWork) == 0 {
		return Dim("No work recorded yet.")
	}
	dates := make([]string, 0, len(dailyWork))
	for d := range dailyWork {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var b strings.Builder
	for _, d := range dates {
		secs := dailyWork[d]
		width := secs * 20 / 14400
		if width > 20 {
			width = 20
		}
		if width < 1 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			StyleFg.Render(d),
			StyleGreen.Render(strings.Repeat("█", width)),
			Dim(FormatSeconds(secs))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func timelineRange(p *domain.Project) string {
	start, end := "not set", "not set"
	if p.TimelineStart != nil {
		start = *p.TimelineStart
	}
	if p.TimelineEnd != nil {
		end = *p.TimelineEnd
	}
	return StyleFg.Render(start) + Dim(" → ") + StyleFg.Render(end)
}
