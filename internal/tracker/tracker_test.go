package tracker

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trackdown/internal/color"
	"github.com/alexanderramin/trackdown/internal/domain"
	"github.com/alexanderramin/trackdown/internal/markdown"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := New("Website", WithClock(testClock), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return tr
}

// newPopulatedTracker builds Website -> Build -> Backend through the
// public API so text and model stay in lockstep.
func newPopulatedTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := newTestTracker(t)
	require.NoError(t, tr.AddSection("Build"))
	require.NoError(t, tr.AddSubsection("Build", "Backend"))
	return tr
}

func TestNewTracker(t *testing.T) {
	tr := newTestTracker(t)

	assert.Equal(t, "Website", tr.Project().Name)
	assert.Equal(t, "# Website\n\nTime: 0\n", tr.Text())
}

func TestNewTrackerEmptyName(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestLoadCanonicalizesLegacyText(t *testing.T) {
	legacy := "# Old\n\nTime: 3600\n\nDailyWork: {\"2024-01-01\": 1800}\n"

	tr := Load(legacy, WithClock(testClock))

	assert.NotContains(t, tr.Text(), "DailyWork:")
	assert.Contains(t, tr.Text(), "Daily Work:\n- 2024-01-01: 0.5h")
	assert.Equal(t, 1800, tr.Project().DailyWork["2024-01-01"])
}

func TestAddSection(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.AddSection("Build"))

	s := tr.Project().Section("Build")
	require.NotNil(t, s)
	assert.Contains(t, color.Palette, s.Color)
	assert.Contains(t, tr.Text(), "## Build")
	assert.Contains(t, tr.Text(), "Color: "+s.Color)

	assert.Error(t, tr.AddSection("Build"), "duplicate titles rejected")
	assert.ErrorIs(t, tr.AddSection("  "), ErrEmptyTitle)
}

func TestAddSectionsGetDistinctColors(t *testing.T) {
	tr := newTestTracker(t)

	titles := []string{"One", "Two", "Three", "Four"}
	for _, title := range titles {
		require.NoError(t, tr.AddSection(title))
	}

	seen := map[string]bool{}
	for _, title := range titles {
		seen[tr.Project().Section(title).Color] = true
	}
	assert.Len(t, seen, len(titles))
}

func TestRenameSectionKeepsMetadata(t *testing.T) {
	tr := newPopulatedTracker(t)
	oldColor := tr.Project().Section("Build").Color

	require.NoError(t, tr.RenameSection("Build", "Ship"))

	assert.Nil(t, tr.Project().Section("Build"))
	s := tr.Project().Section("Ship")
	require.NotNil(t, s)
	assert.Equal(t, oldColor, s.Color)
	require.Len(t, s.Subsections, 1)
	assert.Equal(t, "Backend", s.Subsections[0].Title)

	assert.Contains(t, tr.Text(), "## Ship")
	assert.NotContains(t, tr.Text(), "## Build")
}

func TestRenameSectionErrors(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Other"))

	assert.Error(t, tr.RenameSection("missing", "X"))
	assert.Error(t, tr.RenameSection("Build", "Other"))
	assert.ErrorIs(t, tr.RenameSection("Build", " "), ErrEmptyTitle)
	assert.NoError(t, tr.RenameSection("Build", "Build"), "no-op rename allowed")
}

func TestDeleteSectionRemovesExactRange(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Keep"))
	require.NoError(t, tr.AddSubsection("Keep", "Stays"))

	require.NoError(t, tr.DeleteSection("Build"))

	assert.Nil(t, tr.Project().Section("Build"))
	assert.NotContains(t, tr.Text(), "## Build")
	assert.NotContains(t, tr.Text(), "### Backend")

	keep := tr.Project().Section("Keep")
	require.NotNil(t, keep)
	require.Len(t, keep.Subsections, 1)
	assert.Contains(t, tr.Text(), "## Keep")
	assert.Contains(t, tr.Text(), "### Stays")

	assert.Error(t, tr.DeleteSection("Build"))
}

func TestDeleteSectionStopsItsTimer(t *testing.T) {
	tr := newPopulatedTracker(t)
	_, err := tr.StartTimer("Build", "Backend")
	require.NoError(t, err)

	require.NoError(t, tr.DeleteSection("Build"))

	assert.Nil(t, tr.ActiveTimer())
}

func TestMoveSectionReordersTextAndModel(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Deploy"))

	require.NoError(t, tr.MoveSection("Deploy", domain.MoveUp))

	assert.Equal(t, "Deploy", tr.Project().Sections[0].Title)
	assert.Less(t, strings.Index(tr.Text(), "## Deploy"), strings.Index(tr.Text(), "## Build"))

	// Subsections travel with their section.
	assert.Contains(t, tr.Text(), "### Backend")

	// Moving past the edge is a silent no-op.
	require.NoError(t, tr.MoveSection("Deploy", domain.MoveUp))
	assert.Equal(t, "Deploy", tr.Project().Sections[0].Title)

	assert.Error(t, tr.MoveSection("missing", domain.MoveUp))
}

func TestMoveSectionSurvivesReload(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Deploy"))
	require.NoError(t, tr.MoveSection("Deploy", domain.MoveUp))

	reloaded := Load(tr.Text(), WithClock(testClock))

	require.Len(t, reloaded.Project().Sections, 2)
	assert.Equal(t, "Deploy", reloaded.Project().Sections[0].Title)
	assert.Equal(t, "Build", reloaded.Project().Sections[1].Title)
}

func TestSetSectionColorCascades(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSubsection("Build", "Frontend"))

	require.NoError(t, tr.SetSectionColor("Build", "#ff0000"))

	s := tr.Project().Section("Build")
	assert.Equal(t, "#ff0000", s.Color)
	assert.Equal(t, color.SimilarColor("#ff0000", 0), s.Subsections[0].Color)
	assert.Equal(t, color.SimilarColor("#ff0000", 1), s.Subsections[1].Color)
}

func TestAddSubsection(t *testing.T) {
	tr := newPopulatedTracker(t)
	parentColor := tr.Project().Section("Build").Color

	require.NoError(t, tr.AddSubsection("Build", "Frontend"))

	s := tr.Project().Section("Build")
	require.Len(t, s.Subsections, 2)
	assert.Equal(t, color.SimilarColor(parentColor, 1), s.Subsections[1].Color)

	assert.Error(t, tr.AddSubsection("Build", "Frontend"), "duplicate in same parent")
	assert.Error(t, tr.AddSubsection("missing", "X"))
	assert.ErrorIs(t, tr.AddSubsection("Build", ""), ErrEmptyTitle)
}

func TestAddSubsectionStaysInsideParent(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Deploy"))

	require.NoError(t, tr.AddSubsection("Build", "Frontend"))

	text := tr.Text()
	assert.Less(t, strings.Index(text, "### Frontend"), strings.Index(text, "## Deploy"),
		"new subsection lands before the next section heading")
}

func TestRenameSubsectionScopedToParent(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Deploy"))
	require.NoError(t, tr.AddSubsection("Deploy", "Backend"))

	require.NoError(t, tr.RenameSubsection("Deploy", "Backend", "Infra"))

	assert.NotNil(t, tr.Project().Section("Build").Subsection("Backend"))
	assert.Nil(t, tr.Project().Section("Deploy").Subsection("Backend"))
	assert.NotNil(t, tr.Project().Section("Deploy").Subsection("Infra"))

	assert.Equal(t, 1, strings.Count(tr.Text(), "### Backend"))
	assert.Equal(t, 1, strings.Count(tr.Text(), "### Infra"))
}

func TestDeleteSubsectionScopedToParent(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSection("Deploy"))
	require.NoError(t, tr.AddSubsection("Deploy", "Backend"))

	require.NoError(t, tr.DeleteSubsection("Build", "Backend"))

	assert.Empty(t, tr.Project().Section("Build").Subsections)
	assert.NotNil(t, tr.Project().Section("Deploy").Subsection("Backend"))
	assert.Equal(t, 1, strings.Count(tr.Text(), "### Backend"))

	assert.Error(t, tr.DeleteSubsection("Build", "Backend"))
}

func TestDeleteSubsectionStopsItsTimer(t *testing.T) {
	tr := newPopulatedTracker(t)
	_, err := tr.StartTimer("Build", "Backend")
	require.NoError(t, err)

	require.NoError(t, tr.DeleteSubsection("Build", "Backend"))

	assert.Nil(t, tr.ActiveTimer())
}

func TestMoveSubsection(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSubsection("Build", "Frontend"))

	require.NoError(t, tr.MoveSubsection("Build", "Frontend", domain.MoveUp))

	s := tr.Project().Section("Build")
	assert.Equal(t, "Frontend", s.Subsections[0].Title)
	assert.Less(t, strings.Index(tr.Text(), "### Frontend"), strings.Index(tr.Text(), "### Backend"))

	reloaded := Load(tr.Text(), WithClock(testClock))
	assert.Equal(t, "Frontend", reloaded.Project().Section("Build").Subsections[0].Title)
}

func TestSetSubsectionColor(t *testing.T) {
	tr := newPopulatedTracker(t)

	require.NoError(t, tr.SetSubsectionColor("Build", "Backend", "#123456"))

	assert.Equal(t, "#123456", tr.Project().Section("Build").Subsection("Backend").Color)
	assert.Contains(t, tr.Text(), "Color: #123456")
}

func TestAddNote(t *testing.T) {
	tr := newPopulatedTracker(t)

	require.NoError(t, tr.AddNote("Build", "Backend", "wire the router", domain.NoteTodo))
	require.NoError(t, tr.AddNote("Build", "Backend", "ship it", domain.NoteDone))

	notes := tr.Project().Section("Build").Subsection("Backend").Notes
	require.Len(t, notes, 2)

	// Newest first.
	assert.Equal(t, "ship it", notes[0].Text)
	assert.Equal(t, domain.NoteDone, notes[0].Status)
	assert.Equal(t, "wire the router", notes[1].Text)

	assert.Equal(t, testNow.Format(markdown.TimestampLayout), notes[0].Timestamp)
	assert.NotEqual(t, notes[0].ID, notes[1].ID)

	assert.Contains(t, tr.Text(), "- [done] ship it ("+notes[0].Timestamp+")")
}

func TestAddNoteValidation(t *testing.T) {
	tr := newPopulatedTracker(t)

	assert.ErrorIs(t, tr.AddNote("Build", "Backend", "  ", domain.NoteTodo), ErrEmptyNote)
	assert.Error(t, tr.AddNote("Build", "Backend", "x", domain.NoteStatus("blocked")))
	assert.Error(t, tr.AddNote("Build", "missing", "x", domain.NoteTodo))

	// Empty status defaults to todo.
	require.NoError(t, tr.AddNote("Build", "Backend", "defaulted", ""))
	assert.Equal(t, domain.NoteTodo, tr.Project().Section("Build").Subsection("Backend").Notes[0].Status)
}

func TestNoteIDsMonotonicWithFrozenClock(t *testing.T) {
	tr := newPopulatedTracker(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, tr.AddNote("Build", "Backend", "note", domain.NoteTodo))
	}

	notes := tr.Project().Section("Build").Subsection("Backend").Notes
	base := testNow.UnixMilli()
	assert.Equal(t, base+2, notes[0].ID)
	assert.Equal(t, base+1, notes[1].ID)
	assert.Equal(t, base, notes[2].ID)
}

func TestEditNote(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddNote("Build", "Backend", "tpyo", domain.NoteTodo))
	id := tr.Project().Section("Build").Subsection("Backend").Notes[0].ID

	require.NoError(t, tr.EditNote("Build", "Backend", id, "typo fixed"))

	n := tr.Project().Section("Build").Subsection("Backend").NoteByID(id)
	assert.Equal(t, "typo fixed", n.Text)
	assert.Contains(t, tr.Text(), "typo fixed")

	assert.Error(t, tr.EditNote("Build", "Backend", 999, "x"))
	assert.ErrorIs(t, tr.EditNote("Build", "Backend", id, " "), ErrEmptyNote)
}

func TestDeleteNote(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddNote("Build", "Backend", "temp", domain.NoteTodo))
	id := tr.Project().Section("Build").Subsection("Backend").Notes[0].ID

	require.NoError(t, tr.DeleteNote("Build", "Backend", id))

	assert.Empty(t, tr.Project().Section("Build").Subsection("Backend").Notes)
	assert.NotContains(t, tr.Text(), "temp")
	assert.Error(t, tr.DeleteNote("Build", "Backend", id))
}

func TestMoveNote(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddNote("Build", "Backend", "first", domain.NoteTodo))
	require.NoError(t, tr.AddNote("Build", "Backend", "second", domain.NoteTodo))
	require.NoError(t, tr.AddNote("Build", "Backend", "third", domain.NoteTodo))

	sub := tr.Project().Section("Build").Subsection("Backend")
	// List order is third, second, first.
	firstID := sub.Notes[2].ID

	require.NoError(t, tr.MoveNote("Build", "Backend", firstID, domain.NoteDone, 0))

	sub = tr.Project().Section("Build").Subsection("Backend")
	assert.Equal(t, firstID, sub.Notes[0].ID)
	assert.Equal(t, domain.NoteDone, sub.Notes[0].Status)
	assert.Equal(t, "first", sub.Notes[0].Text)

	// Position beyond the end clamps to the end.
	require.NoError(t, tr.MoveNote("Build", "Backend", firstID, domain.NoteDone, 99))
	assert.Equal(t, firstID, sub.Notes[len(sub.Notes)-1].ID)

	assert.Error(t, tr.MoveNote("Build", "Backend", 999, domain.NoteTodo, 0))
	assert.Error(t, tr.MoveNote("Build", "Backend", firstID, domain.NoteStatus("bogus"), 0))
}

func TestTimelineRange(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.SetTimelineRange("2024-01-01", "2024-06-30"))
	assert.Equal(t, "2024-01-01", *tr.Project().TimelineStart)
	assert.Equal(t, "2024-06-30", *tr.Project().TimelineEnd)
	assert.Contains(t, tr.Text(), "Timeline Start: 2024-01-01")

	require.NoError(t, tr.SetTimelineRange("2024-01-01", ""))
	assert.Nil(t, tr.Project().TimelineEnd)
	assert.Contains(t, tr.Text(), "Timeline End: not set")

	assert.Error(t, tr.SetTimelineRange("2024-13-40", ""))
	assert.Error(t, tr.SetTimelineRange("", "nonsense"))
}

func TestEnsureTimelineDefaults(t *testing.T) {
	tr := newTestTracker(t)

	tr.EnsureTimelineDefaults()

	assert.Equal(t, "2024-03-10", *tr.Project().TimelineStart)
	assert.Equal(t, "2024-06-10", *tr.Project().TimelineEnd)

	// Existing bounds are left alone.
	require.NoError(t, tr.SetTimelineRange("2024-01-01", "2024-02-01"))
	tr.EnsureTimelineDefaults()
	assert.Equal(t, "2024-01-01", *tr.Project().TimelineStart)
	assert.Equal(t, "2024-02-01", *tr.Project().TimelineEnd)
}

func TestEvents(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.AddEvent("2024-04-01", "beta launch"))
	require.NoError(t, tr.AddEvent("2024-05-01", "GA"))

	require.Len(t, tr.Project().Events, 2)
	assert.NotEqual(t, tr.Project().Events[0].ID, tr.Project().Events[1].ID)
	assert.Contains(t, tr.Text(), "- 2024-04-01: beta launch")

	assert.ErrorIs(t, tr.AddEvent("", "x"), ErrEmptyDate)
	assert.ErrorIs(t, tr.AddEvent("2024-04-01", " "), ErrEmptyNote)
	assert.Error(t, tr.AddEvent("04/01/2024", "bad date shape"))

	id := tr.Project().Events[0].ID
	require.NoError(t, tr.RemoveEvent(id))
	require.Len(t, tr.Project().Events, 1)
	assert.Error(t, tr.RemoveEvent(id))
}

func TestMutationsRoundTripThroughText(t *testing.T) {
	tr := newPopulatedTracker(t)
	require.NoError(t, tr.AddSubsection("Build", "Frontend"))
	require.NoError(t, tr.AddNote("Build", "Backend", "wire the router", domain.NoteInProgress))
	require.NoError(t, tr.SetTimelineRange("2024-01-01", "2024-06-30"))
	require.NoError(t, tr.AddEvent("2024-04-01", "beta launch"))

	reloaded := Load(tr.Text(), WithClock(testClock))
	p, q := tr.Project(), reloaded.Project()

	assert.Equal(t, p.Name, q.Name)
	assert.Equal(t, p.TotalTimeSeconds, q.TotalTimeSeconds)
	assert.Equal(t, *p.TimelineStart, *q.TimelineStart)
	require.Len(t, q.Events, 1)
	assert.Equal(t, "beta launch", q.Events[0].Note)

	require.Len(t, q.Sections, 1)
	assert.Equal(t, "Build", q.Sections[0].Title)
	assert.Equal(t, p.Sections[0].Color, q.Sections[0].Color)
	require.Len(t, q.Sections[0].Subsections, 2)

	got := q.Sections[0].Subsection("Backend").Notes
	require.Len(t, got, 1)
	// Note identity is reminted on parse; content survives.
	assert.Equal(t, "wire the router", got[0].Text)
	assert.Equal(t, domain.NoteInProgress, got[0].Status)
	assert.Equal(t, testNow.Format(markdown.TimestampLayout), got[0].Timestamp)

	// A second reload is textually stable.
	assert.Equal(t, tr.Text(), Load(tr.Text(), WithClock(testClock)).Text())
}
