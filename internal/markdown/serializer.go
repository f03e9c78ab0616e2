package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/trackdown/internal/domain"
)

// NewDocument returns the seed text for a fresh project. The legacy
// DailyWork header is what the very first save rewrites into the
// human-friendly block, so new and migrated documents converge.
func NewDocument(name string) string {
	return fmt.Sprintf("# %s\n\nTime: 0\n\nDailyWork: {}\n\n", name)
}

// Serialize re-emits the project as markdown by patching prev, the
// previous document text. Headings, prose and anything unrecognized
// pass through in their original order; only the metadata lines
// (Time, Color, Daily Work, Timeline blocks, Notes blocks) are
// regenerated from the model. A heading present in prev but absent
// from the model keeps its line and simply loses its metadata block.
//
// The output is deterministic: the same project and prev text always
// produce byte-identical results.
func Serialize(p *domain.Project, prev string) string {
	lines := strings.Split(prev, "\n")
	var b strings.Builder
	i := 0
	firstSec := false

	// skipMetadata consumes the blank and metadata lines that follow a
	// heading so they can be re-rendered from the model.
	skipMetadata := func() {
		for i < len(lines) {
			l := lines[i]
			t := strings.TrimSpace(l)
			if t == "" ||
				strings.HasPrefix(l, "Time:") ||
				strings.HasPrefix(l, "Color:") ||
				strings.HasPrefix(l, "Daily Work:") ||
				strings.HasPrefix(l, "Timeline Start:") ||
				strings.HasPrefix(l, "Timeline End:") ||
				strings.HasPrefix(l, "Timeline Events:") ||
				(strings.HasPrefix(t, "- ") && !strings.HasPrefix(l, "## ") && !strings.HasPrefix(l, "### ")) {
				i++
				continue
			}
			return
		}
	}

	for i < len(lines) {
		l := lines[i]

		if strings.HasPrefix(l, "DailyWork:") ||
			strings.HasPrefix(l, "Timeline:") ||
			strings.HasPrefix(l, "Timeline Start:") ||
			strings.HasPrefix(l, "Timeline End:") ||
			strings.HasPrefix(l, "Timeline Events:") ||
			strings.HasPrefix(l, "Daily Work:") ||
			strings.HasPrefix(l, "Time:") ||
			strings.HasPrefix(l, "Color:") ||
			(!firstSec && strings.TrimSpace(l) == "") {
			i++
			continue
		}

		if i == 0 && strings.HasPrefix(l, "# ") {
			b.WriteString(l)
			b.WriteString(fmt.Sprintf("\n\nTime: %d\n\n", p.TotalTimeSeconds))
			writeDailyWork(&b, p.DailyWork)
			writeTimeline(&b, p)
			i++
			skipMetadata()
			continue
		}

		if strings.HasPrefix(l, "## ") && !strings.HasPrefix(l, "### ") {
			title := strings.TrimSpace(l[3:])
			if !firstSec {
				b.WriteString("\n")
				firstSec = true
			}
			b.WriteString(l + "\n")
			i++
			skipMetadata()
			if s := p.Section(title); s != nil {
				b.WriteString(fmt.Sprintf("\nTime: %d\n", s.TotalTimeSeconds))
				if s.Color != "" {
					b.WriteString("Color: " + s.Color + "\n")
				}
				b.WriteString("\n")
			}
			continue
		}

		if strings.HasPrefix(l, "### ") {
			title := strings.TrimSpace(l[4:])
			b.WriteString(l + "\n")

			// The owning section is the nearest ## heading above.
			parent := ""
			for j := i - 1; j >= 0; j-- {
				if strings.HasPrefix(lines[j], "## ") && !strings.HasPrefix(lines[j], "### ") {
					parent = strings.TrimSpace(lines[j][3:])
					break
				}
			}
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], "#") {
				i++
			}

			var sub *domain.Subsection
			if s := p.Section(parent); s != nil {
				sub = s.Subsection(title)
			}
			if sub != nil {
				b.WriteString(fmt.Sprintf("\nTime: %d\n", sub.TotalTimeSeconds))
				if sub.Color != "" {
					b.WriteString("Color: " + sub.Color + "\n")
				}
				if len(sub.Notes) > 0 {
					b.WriteString("\n**Notes:**\n")
					for _, n := range sub.Notes {
						b.WriteString(FormatNote(n) + "\n")
					}
				}
				b.WriteString("\n")
			}
			continue
		}

		b.WriteString(l + "\n")
		i++
	}

	return strings.TrimSpace(b.String()) + "\n"
}

// writeDailyWork renders the histogram newest-first with hours to one
// decimal place.
func writeDailyWork(b *strings.Builder, dailyWork map[string]int) {
	if len(dailyWork) == 0 {
		return
	}
	dates := make([]string, 0, len(dailyWork))
	for d := range dailyWork {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	b.WriteString("Daily Work:\n")
	for _, d := range dates {
		hours := float64(dailyWork[d]) / 3600
		b.WriteString(fmt.Sprintf("- %s: %sh\n", d, strconv.FormatFloat(hours, 'f', 1, 64)))
	}
	b.WriteString("\n")
}

func writeTimeline(b *strings.Builder, p *domain.Project) {
	if p.TimelineStart == nil && p.TimelineEnd == nil {
		return
	}
	b.WriteString("Timeline Start: " + timelineDate(p.TimelineStart) + "\n")
	b.WriteString("Timeline End: " + timelineDate(p.TimelineEnd) + "\n")
	if len(p.Events) > 0 {
		b.WriteString("\nTimeline Events:\n")
		for _, ev := range p.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", ev.Date, ev.Note))
		}
	}
	b.WriteString("\n")
}

func timelineDate(d *string) string {
	if d == nil {
		return "not set"
	}
	return *d
}

// FormatNote renders one note line. Legacy lines that never matched a
// recognized pattern are demoted to todo with their raw text intact.
func FormatNote(n domain.Note) string {
	if !n.Structured() {
		return "- [todo] " + n.Raw
	}
	return fmt.Sprintf("- [%s] %s (%s)", n.Status, n.Text, n.Timestamp)
}
