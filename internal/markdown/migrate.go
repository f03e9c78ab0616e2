package markdown

import (
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/trackdown/internal/domain"
)

// TimestampLayout is the display shape used for note timestamps. It is
// an opaque label: timestamps are shown and round-tripped as strings,
// never parsed back into times.
const TimestampLayout = "1/2/06, 3:04:05 PM"

var (
	legacyNotePattern     = regexp.MustCompile(`^-\s*\[([^\]]+)\]\s*(.+?)\s*\(([^)]+)\)$`)
	legacyNoteNoTSPattern = regexp.MustCompile(`^-\s*\[([^\]]+)\]\s*(.+)$`)
)

// Migrate converts legacy string notes to structured kanban notes. It
// is idempotent: if the first note is already structured the input is
// returned unchanged. IDs are minted as now+index so that notes
// migrated in the same batch stay distinct. Lines matching neither
// pattern pass through as raw notes, so callers must expect mixed
// results.
func Migrate(notes []domain.Note, now time.Time) []domain.Note {
	if len(notes) == 0 {
		return notes
	}
	if notes[0].Structured() {
		return notes
	}

	base := now.UnixMilli()
	out := make([]domain.Note, len(notes))
	for i, n := range notes {
		if n.Structured() {
			out[i] = n
			continue
		}
		out[i] = migrateLine(n.Raw, base+int64(i), now)
	}
	return out
}

// MigrateLines wraps raw captured note lines and migrates them.
func MigrateLines(lines []string, now time.Time) []domain.Note {
	if len(lines) == 0 {
		return nil
	}
	notes := make([]domain.Note, len(lines))
	for i, l := range lines {
		notes[i] = domain.Note{Raw: l}
	}
	return Migrate(notes, now)
}

func migrateLine(line string, id int64, now time.Time) domain.Note {
	if m := legacyNotePattern.FindStringSubmatch(line); m != nil {
		return domain.Note{
			ID:        id,
			Text:      strings.TrimSpace(m[2]),
			Timestamp: m[3],
			Status:    domain.NoteStatus(m[1]),
		}
	}
	if m := legacyNoteNoTSPattern.FindStringSubmatch(line); m != nil {
		return domain.Note{
			ID:        id,
			Text:      strings.TrimSpace(m[2]),
			Timestamp: now.Format(TimestampLayout),
			Status:    domain.NoteStatus(m[1]),
		}
	}
	return domain.Note{Raw: line}
}
