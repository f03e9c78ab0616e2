// Package markdown implements the round-trip between the persisted
// markdown document and the in-memory project model. The document text
// is the source of truth: Parse rebuilds the model from it and
// Serialize patches the previous text with freshly rendered metadata,
// leaving anything it does not recognize alone.
package markdown

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trackdown/internal/domain"
)

var (
	dailyWorkLinePattern = regexp.MustCompile(`^-\s*([^:]+):\s*(.+)h$`)
	eventLinePattern     = regexp.MustCompile(`^-\s*([^:]+):\s*(.+)$`)
)

// legacyTimeline is the shape of the old JSON-embedded `Timeline:` line.
type legacyTimeline struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Events    []struct {
		Date string `json:"date"`
		Note string `json:"note"`
	} `json:"events"`
}

// Parse rebuilds a Project from raw document text. It never fails:
// malformed metadata lines are ignored and numeric fields default to
// zero. Headings it does not understand are treated as prose.
func Parse(text string) *domain.Project {
	return ParseAt(text, time.Now())
}

// ParseAt is Parse with an injected current time, used for the IDs and
// timestamps minted while migrating legacy notes.
func ParseAt(text string, now time.Time) *domain.Project {
	p := domain.NewProject("")
	lines := strings.Split(text, "\n")

	var (
		curSection *domain.Section
		curSub     *domain.Subsection
		rawNotes   = map[*domain.Subsection][]string{}
		// Event IDs are positional so separate parses of the same text
		// agree on addressing.
		eventID = int64(1)
	)

	for i := 0; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(lines[i], "# ") && !strings.HasPrefix(lines[i], "## "):
			if p.Name == "" {
				p.Name = strings.TrimSpace(lines[i][2:])
			}

		case strings.HasPrefix(l, "Time:") && curSection == nil:
			p.TotalTimeSeconds = parseIntDefault(l[5:], 0)

		case strings.HasPrefix(l, "DailyWork:"):
			// Legacy JSON histogram; the human-friendly Daily Work
			// block below supersedes it when both are present.
			var m map[string]float64
			if err := json.Unmarshal([]byte(strings.TrimSpace(l[10:])), &m); err == nil {
				for date, secs := range m {
					p.DailyWork[date] = int(math.Round(secs))
				}
			}

		case strings.HasPrefix(l, "Timeline Start:"):
			p.TimelineStart = parseTimelineDate(l[15:])

		case strings.HasPrefix(l, "Timeline End:"):
			p.TimelineEnd = parseTimelineDate(l[13:])

		case strings.HasPrefix(l, "Timeline:"):
			// Legacy JSON timeline.
			var tl legacyTimeline
			if err := json.Unmarshal([]byte(strings.TrimSpace(l[9:])), &tl); err == nil {
				p.TimelineStart = normalizeTimelineDate(tl.StartDate)
				p.TimelineEnd = normalizeTimelineDate(tl.EndDate)
				for _, ev := range tl.Events {
					p.Events = append(p.Events, domain.Event{ID: eventID, Date: ev.Date, Note: ev.Note})
					eventID++
				}
			}

		case strings.HasPrefix(l, "Daily Work:"):
			for i++; i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "- "); i++ {
				m := dailyWorkLinePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					continue
				}
				if hours, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64); err == nil {
					p.DailyWork[strings.TrimSpace(m[1])] = int(math.Round(hours * 3600))
				}
			}
			i--

		case strings.HasPrefix(l, "Timeline Events:"):
			for i++; i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "- "); i++ {
				m := eventLinePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					continue
				}
				p.Events = append(p.Events, domain.Event{
					ID:   eventID,
					Date: strings.TrimSpace(m[1]),
					Note: m[2],
				})
				eventID++
			}
			i--

		case strings.HasPrefix(lines[i], "## ") && !strings.HasPrefix(lines[i], "### "):
			title := strings.TrimSpace(lines[i][3:])
			curSection = p.Section(title)
			if curSection == nil {
				curSection = &domain.Section{Title: title}
				p.Sections = append(p.Sections, curSection)
			} else {
				// A duplicate heading restarts the section, as a
				// re-parse of hand-edited text would.
				*curSection = domain.Section{Title: title}
			}
			curSub = nil
			applyHeadingLookahead(lines, i, &curSection.TotalTimeSeconds, &curSection.Color)

		case strings.HasPrefix(lines[i], "### ") && curSection != nil:
			title := strings.TrimSpace(lines[i][4:])
			curSub = curSection.Subsection(title)
			if curSub == nil {
				curSub = &domain.Subsection{Title: title}
				curSection.Subsections = append(curSection.Subsections, curSub)
			}
			applyHeadingLookahead(lines, i, &curSub.TotalTimeSeconds, &curSub.Color)

		case strings.HasPrefix(l, "**Notes:**") && curSub != nil:
			var notes []string
			for i++; i < len(lines) && !strings.HasPrefix(lines[i], "#") && !strings.HasPrefix(lines[i], "**Notes:**"); i++ {
				if t := strings.TrimSpace(lines[i]); strings.HasPrefix(t, "- [") {
					notes = append(notes, t)
				}
			}
			i--
			rawNotes[curSub] = notes

		case strings.HasPrefix(l, "**Old Notes:**") && curSub != nil:
			// Oldest format: free-form notes separated by --- lines.
			var block []string
			for i++; i < len(lines) && !strings.HasPrefix(lines[i], "#") && !strings.HasPrefix(lines[i], "**Notes:**"); i++ {
				block = append(block, lines[i])
			}
			i--
			rawNotes[curSub] = append(rawNotes[curSub], splitLegacyNotes(block)...)
		}
	}

	// Note IDs are renumbered positionally for the same reason as event
	// IDs; the clock-based IDs minted during migration are session
	// identities and do not survive a reparse anyway.
	noteID := int64(1)
	for _, s := range p.Sections {
		for _, sub := range s.Subsections {
			sub.Notes = MigrateLines(rawNotes[sub], now)
			for i := range sub.Notes {
				sub.Notes[i].ID = noteID
				noteID++
			}
		}
	}
	return p
}

// applyHeadingLookahead scans up to five lines past a heading for Time
// and Color metadata. The loop deliberately does not break early, so a
// later duplicate within the window overrides an earlier one.
func applyHeadingLookahead(lines []string, i int, seconds *int, color *string) {
	for j := i + 1; j < len(lines) && j < i+6; j++ {
		if strings.HasPrefix(lines[j], "Time:") {
			*seconds = parseIntDefault(lines[j][5:], 0)
		}
		if strings.HasPrefix(lines[j], "Color:") {
			*color = strings.TrimSpace(lines[j][6:])
		}
	}
}

// parseTimelineDate maps an empty or "not set" value to nil.
func parseTimelineDate(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "not set" {
		return nil
	}
	return &v
}

func normalizeTimelineDate(v *string) *string {
	if v == nil {
		return nil
	}
	return parseTimelineDate(*v)
}

// splitLegacyNotes splits an Old Notes block on standalone --- lines.
func splitLegacyNotes(block []string) []string {
	var notes []string
	var cur []string
	flush := func() {
		if joined := strings.TrimSpace(strings.Join(cur, "\n")); joined != "" {
			notes = append(notes, joined)
		}
		cur = cur[:0]
	}
	for _, line := range block {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return notes
}

// parseIntDefault parses the leading integer of a string the way a
// lenient reader would: surrounding whitespace and trailing garbage
// are tolerated, anything else yields the fallback.
func parseIntDefault(raw string, fallback int) int {
	s := strings.TrimSpace(raw)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return fallback
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return fallback
	}
	if neg {
		return -n
	}
	return n
}
