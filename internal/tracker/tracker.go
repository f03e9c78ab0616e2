// Package tracker holds the live application state: the project model,
// the document text it was parsed from, and the single active timer.
// Every mutation goes through a Tracker method and ends by re-deriving
// the document text through the serializer, so the text is always the
// authoritative, persistable form of the current state.
package tracker

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/alexanderramin/trackdown/internal/color"
	"github.com/alexanderramin/trackdown/internal/domain"
	"github.com/alexanderramin/trackdown/internal/markdown"
)

var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrEmptyNote  = errors.New("note text must not be empty")
	ErrEmptyDate  = errors.New("date must not be empty")
)

type Tracker struct {
	project *domain.Project
	text    string
	clock   func() time.Time
	rng     *rand.Rand
	active  *Timer
}

// Option configures a Tracker during construction.
type Option func(*Tracker)

// WithClock injects the time source used for note IDs, timestamps and
// the daily histogram key.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithRand injects the randomness source used for palette picks.
func WithRand(rng *rand.Rand) Option {
	return func(t *Tracker) { t.rng = rng }
}

// New creates a tracker over a fresh document.
func New(name string, opts ...Option) (*Tracker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name: %w", ErrEmptyTitle)
	}
	t := newTracker(opts)
	t.text = markdown.NewDocument(name)
	t.project = markdown.ParseAt(t.text, t.clock())
	t.sync()
	return t, nil
}

// Load creates a tracker from existing document text. Parsing is
// lenient and never fails; loading immediately re-serializes so the
// text settles into its canonical form (migrating legacy metadata as
// a side effect).
func Load(text string, opts ...Option) *Tracker {
	t := newTracker(opts)
	t.project = markdown.ParseAt(text, t.clock())
	t.text = text
	t.sync()
	return t
}

func newTracker(opts []Option) *Tracker {
	t := &Tracker{
		clock: time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Project exposes the model for reading. Callers must not mutate it
// directly; all writes go through Tracker methods.
func (t *Tracker) Project() *domain.Project { return t.project }

// Text returns the current document text, ready to persist.
func (t *Tracker) Text() string { return t.text }

func (t *Tracker) sync() {
	t.text = markdown.Serialize(t.project, t.text)
}

// ── Sections ────────────────────────────────────────────────────────────────

func (t *Tracker) AddSection(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if t.project.Section(title) != nil {
		return fmt.Errorf("section %q already exists", title)
	}

	c := color.UnusedColor(t.project, t.rng)
	t.text += fmt.Sprintf("## %s\n\nTime: 0\nColor: %s\n\n", title, c)
	t.project.Sections = append(t.project.Sections, &domain.Section{Title: title, Color: c})
	t.sync()
	return nil
}

func (t *Tracker) RenameSection(oldTitle, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return ErrEmptyTitle
	}
	s := t.project.Section(oldTitle)
	if s == nil {
		return fmt.Errorf("section %q not found", oldTitle)
	}
	if newTitle != oldTitle && t.project.Section(newTitle) != nil {
		return fmt.Errorf("section %q already exists", newTitle)
	}

	// The heading line and the model title are a join key and must
	// change together.
	lines := strings.Split(t.text, "\n")
	for i, l := range lines {
		if isSectionHeading(l) && strings.TrimSpace(l[3:]) == oldTitle {
			lines[i] = "## " + newTitle
			break
		}
	}
	t.text = strings.Join(lines, "\n")
	s.Title = newTitle
	t.sync()
	return nil
}

func (t *Tracker) DeleteSection(title string) error {
	s := t.project.Section(title)
	if s == nil {
		return fmt.Errorf("section %q not found", title)
	}
	if t.active != nil && t.active.section == s {
		t.stopActive()
	}

	lines := strings.Split(t.text, "\n")
	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "## "+title {
			start = i
			break
		}
	}
	if start >= 0 {
		end := start + 1
		for end < len(lines) && !strings.HasPrefix(lines[end], "## ") {
			end++
		}
		t.text = strings.Join(append(lines[:start:start], lines[end:]...), "\n")
	}
	t.project.RemoveSection(title)
	t.sync()
	return nil
}

func (t *Tracker) MoveSection(title string, dir domain.MoveDirection) error {
	if t.project.Section(title) == nil {
		return fmt.Errorf("section %q not found", title)
	}
	if !t.project.MoveSection(title, dir) {
		return nil // already at the edge
	}
	t.reorderText()
	t.sync()
	return nil
}

func (t *Tracker) SetSectionColor(title, hex string) error {
	s := t.project.Section(title)
	if s == nil {
		return fmt.Errorf("section %q not found", title)
	}
	s.Color = hex
	// Subsections are recolored with variants of the new base, in order.
	for i, sub := range s.Subsections {
		sub.Color = color.SimilarColor(hex, i)
	}
	t.sync()
	return nil
}

// ── Subsections ─────────────────────────────────────────────────────────────

func (t *Tracker) AddSubsection(parent, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	s := t.project.Section(parent)
	if s == nil {
		return fmt.Errorf("section %q not found", parent)
	}
	if s.Subsection(title) != nil {
		return fmt.Errorf("subsection %q already exists in %q", title, parent)
	}

	c := ""
	if s.Color != "" {
		c = color.SimilarColor(s.Color, len(s.Subsections))
	}

	// Insert the heading block into the text just before the next
	// level-2 heading, keeping it inside the parent section.
	lines := strings.Split(t.text, "\n")
	idx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "## "+parent {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("section heading %q not found in document", parent)
	}
	insert := idx + 1
	for insert < len(lines) && !isSectionHeading(lines[insert]) {
		insert++
	}
	block := []string{"", "### " + title, "", "Time: 0"}
	if c != "" {
		block = append(block, "Color: "+c)
	}
	block = append(block, "**Notes:**", "")
	lines = append(lines[:insert:insert], append(block, lines[insert:]...)...)
	t.text = strings.Join(lines, "\n")

	s.Subsections = append(s.Subsections, &domain.Subsection{Title: title, Color: c})
	t.sync()
	return nil
}

func (t *Tracker) RenameSubsection(parent, oldTitle, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return ErrEmptyTitle
	}
	s := t.project.Section(parent)
	if s == nil {
		return fmt.Errorf("section %q not found", parent)
	}
	sub := s.Subsection(oldTitle)
	if sub == nil {
		return fmt.Errorf("subsection %q not found in %q", oldTitle, parent)
	}
	if newTitle != oldTitle && s.Subsection(newTitle) != nil {
		return fmt.Errorf("subsection %q already exists in %q", newTitle, parent)
	}

	lines := strings.Split(t.text, "\n")
	inParent := false
	for i, l := range lines {
		if isSectionHeading(l) {
			inParent = strings.TrimSpace(l[3:]) == parent
			continue
		}
		if inParent && strings.HasPrefix(l, "### ") && strings.TrimSpace(l[4:]) == oldTitle {
			lines[i] = "### " + newTitle
			break
		}
	}
	t.text = strings.Join(lines, "\n")
	sub.Title = newTitle
	t.sync()
	return nil
}

func (t *Tracker) DeleteSubsection(parent, title string) error {
	s := t.project.Section(parent)
	if s == nil {
		return fmt.Errorf("section %q not found", parent)
	}
	sub := s.Subsection(title)
	if sub == nil {
		return fmt.Errorf("subsection %q not found in %q", title, parent)
	}
	if t.active != nil && t.active.sub == sub {
		t.stopActive()
	}

	// Remove exactly the heading-to-next-heading range, scoped to the
	// parent section so an identical title elsewhere is untouched.
	lines := strings.Split(t.text, "\n")
	inParent := false
	start := -1
	for i, l := range lines {
		if isSectionHeading(l) {
			inParent = strings.TrimSpace(l[3:]) == parent
			continue
		}
		if inParent && strings.TrimSpace(l) == "### "+title {
			start = i
			break
		}
	}
	if start >= 0 {
		end := start + 1
		for end < len(lines) && !strings.HasPrefix(lines[end], "#") {
			end++
		}
		t.text = strings.Join(append(lines[:start:start], lines[end:]...), "\n")
	}
	s.RemoveSubsection(title)
	t.sync()
	return nil
}

func (t *Tracker) MoveSubsection(parent, title string, dir domain.MoveDirection) error {
	s := t.project.Section(parent)
	if s == nil {
		return fmt.Errorf("section %q not found", parent)
	}
	if s.Subsection(title) == nil {
		return fmt.Errorf("subsection %q not found in %q", title, parent)
	}
	if !s.MoveSubsection(title, dir) {
		return nil
	}
	t.reorderText()
	t.sync()
	return nil
}

func (t *Tracker) SetSubsectionColor(parent, title, hex string) error {
	s := t.project.Section(parent)
	if s == nil {
		return fmt.Errorf("section %q not found", parent)
	}
	sub := s.Subsection(title)
	if sub == nil {
		return fmt.Errorf("subsection %q not found in %q", title, parent)
	}
	sub.Color = hex
	t.sync()
	return nil
}

// ── Notes ───────────────────────────────────────────────────────────────────

func (t *Tracker) AddNote(section, subsection, text string, status domain.NoteStatus) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyNote
	}
	if status == "" {
		status = domain.NoteTodo
	}
	if !domain.ValidNoteStatuses[status] {
		return fmt.Errorf("unknown note status %q", status)
	}
	sub, err := t.subsection(section, subsection)
	if err != nil {
		return err
	}

	note := domain.Note{
		ID:        t.nextNoteID(),
		Text:      text,
		Timestamp: t.clock().Format(markdown.TimestampLayout),
		Status:    status,
	}
	sub.Notes = append([]domain.Note{note}, sub.Notes...)
	t.sync()
	return nil
}

func (t *Tracker) EditNote(section, subsection string, id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyNote
	}
	sub, err := t.subsection(section, subsection)
	if err != nil {
		return err
	}
	n := sub.NoteByID(id)
	if n == nil {
		return fmt.Errorf("note %d not found", id)
	}
	n.Text = text
	t.sync()
	return nil
}

func (t *Tracker) DeleteNote(section, subsection string, id int64) error {
	sub, err := t.subsection(section, subsection)
	if err != nil {
		return err
	}
	if !sub.RemoveNoteByID(id) {
		return fmt.Errorf("note %d not found", id)
	}
	t.sync()
	return nil
}

// MoveNote changes a note's kanban column and its position within the
// subsection's note list. The note keeps its identity; position is
// clamped to the list bounds.
func (t *Tracker) MoveNote(section, subsection string, id int64, status domain.NoteStatus, pos int) error {
	if !domain.ValidNoteStatuses[status] {
		return fmt.Errorf("unknown note status %q", status)
	}
	sub, err := t.subsection(section, subsection)
	if err != nil {
		return err
	}
	idx := -1
	for i := range sub.Notes {
		if sub.Notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("note %d not found", id)
	}

	n := sub.Notes[idx]
	n.Status = status
	sub.Notes = append(sub.Notes[:idx], sub.Notes[idx+1:]...)
	if pos < 0 {
		pos = 0
	}
	if pos > len(sub.Notes) {
		pos = len(sub.Notes)
	}
	sub.Notes = append(sub.Notes[:pos:pos], append([]domain.Note{n}, sub.Notes[pos:]...)...)
	t.sync()
	return nil
}

// ── Timeline ────────────────────────────────────────────────────────────────

// SetTimelineRange sets the visible date range. Empty values clear the
// corresponding bound.
func (t *Tracker) SetTimelineRange(start, end string) error {
	var err error
	if t.project.TimelineStart, err = timelineBound(start); err != nil {
		return err
	}
	if t.project.TimelineEnd, err = timelineBound(end); err != nil {
		return err
	}
	t.sync()
	return nil
}

// EnsureTimelineDefaults fills unset bounds: start today, end three
// months out.
func (t *Tracker) EnsureTimelineDefaults() {
	now := t.clock()
	if t.project.TimelineStart == nil {
		v := now.Format("2006-01-02")
		t.project.TimelineStart = &v
	}
	if t.project.TimelineEnd == nil {
		v := now.AddDate(0, 3, 0).Format("2006-01-02")
		t.project.TimelineEnd = &v
	}
	t.sync()
}

func (t *Tracker) AddEvent(date, note string) error {
	date = strings.TrimSpace(date)
	note = strings.TrimSpace(note)
	if date == "" {
		return ErrEmptyDate
	}
	if note == "" {
		return ErrEmptyNote
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid event date %q: %w", date, err)
	}
	t.project.Events = append(t.project.Events, domain.Event{
		ID:   t.nextEventID(),
		Date: date,
		Note: note,
	})
	t.sync()
	return nil
}

func (t *Tracker) RemoveEvent(id int64) error {
	if !t.project.RemoveEvent(id) {
		return fmt.Errorf("event %d not found", id)
	}
	t.sync()
	return nil
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func (t *Tracker) subsection(section, subsection string) (*domain.Subsection, error) {
	s := t.project.Section(section)
	if s == nil {
		return nil, fmt.Errorf("section %q not found", section)
	}
	sub := s.Subsection(subsection)
	if sub == nil {
		return nil, fmt.Errorf("subsection %q not found in %q", subsection, section)
	}
	return sub, nil
}

// nextNoteID mints a millisecond-clock ID, bumped past any existing
// note ID so identity is monotonic and never reused even when the
// clock stands still.
func (t *Tracker) nextNoteID() int64 {
	id := t.clock().UnixMilli()
	for _, s := range t.project.Sections {
		for _, sub := range s.Subsections {
			for _, n := range sub.Notes {
				if n.ID >= id {
					id = n.ID + 1
				}
			}
		}
	}
	return id
}

func (t *Tracker) nextEventID() int64 {
	id := t.clock().UnixMilli()
	for _, ev := range t.project.Events {
		if ev.ID >= id {
			id = ev.ID + 1
		}
	}
	return id
}

// reorderText rebuilds the section ordering of the document text to
// match the model after a move, preserving each section's lines
// verbatim. The preamble (everything before the first level-2
// heading) stays in place.
func (t *Tracker) reorderText() {
	lines := strings.Split(t.text, "\n")

	firstHeading := len(lines)
	for i, l := range lines {
		if isSectionHeading(l) {
			firstHeading = i
			break
		}
	}

	// Slice the text into per-section blocks, each further sliced into
	// subsection blocks so both levels can be reordered.
	type block struct {
		title string
		head  []string // heading + lines before the first subsection
		subs  map[string][]string
		order []string
	}
	var blocks []*block
	var cur *block
	var curSub string
	for _, l := range lines[firstHeading:] {
		if isSectionHeading(l) {
			cur = &block{title: strings.TrimSpace(l[3:]), subs: map[string][]string{}}
			cur.head = append(cur.head, l)
			curSub = ""
			blocks = append(blocks, cur)
			continue
		}
		if cur == nil {
			continue
		}
		if strings.HasPrefix(l, "### ") {
			curSub = strings.TrimSpace(l[4:])
			cur.order = append(cur.order, curSub)
			cur.subs[curSub] = append(cur.subs[curSub], l)
			continue
		}
		if curSub == "" {
			cur.head = append(cur.head, l)
		} else {
			cur.subs[curSub] = append(cur.subs[curSub], l)
		}
	}

	byTitle := map[string]*block{}
	for _, bl := range blocks {
		byTitle[bl.title] = bl
	}

	out := append([]string{}, lines[:firstHeading]...)
	appended := map[*block]bool{}
	emit := func(bl *block, order []string) {
		out = append(out, bl.head...)
		seen := map[string]bool{}
		for _, subTitle := range order {
			if sub, ok := bl.subs[subTitle]; ok && !seen[subTitle] {
				out = append(out, sub...)
				seen[subTitle] = true
			}
		}
		// Subsection text with no model counterpart keeps its place.
		for _, subTitle := range bl.order {
			if !seen[subTitle] {
				out = append(out, bl.subs[subTitle]...)
			}
		}
	}
	for _, s := range t.project.Sections {
		bl, ok := byTitle[s.Title]
		if !ok || appended[bl] {
			continue
		}
		appended[bl] = true
		order := make([]string, 0, len(s.Subsections))
		for _, sub := range s.Subsections {
			order = append(order, sub.Title)
		}
		emit(bl, order)
	}
	// Section text with no model counterpart keeps its place at the end.
	for _, bl := range blocks {
		if !appended[bl] {
			emit(bl, bl.order)
		}
	}

	t.text = strings.Join(out, "\n")
}

func isSectionHeading(l string) bool {
	return strings.HasPrefix(l, "## ") && !strings.HasPrefix(l, "### ")
}

func timelineBound(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return &v, nil
}
