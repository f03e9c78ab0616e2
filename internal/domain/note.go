package domain

// Note is one kanban card. ID is assigned at creation and never
// reused; Timestamp is a display string and is never parsed back.
type Note struct {
	ID        int64
	Text      string
	Timestamp string
	Status    NoteStatus

	// Raw holds the original line for legacy notes that matched no
	// recognized pattern during migration. Such notes carry no status
	// and are re-emitted from Raw verbatim-ish (see the serializer).
	Raw string
}

// Structured reports whether the note has been migrated to the
// kanban representation.
func (n Note) Structured() bool {
	return n.Status != ""
}

// Event is a user-placed dated marker on the project timeline.
type Event struct {
	ID   int64
	Date string // ISO date
	Note string
}
