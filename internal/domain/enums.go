package domain

type NoteStatus string

const (
	NoteTodo       NoteStatus = "todo"
	NoteInProgress NoteStatus = "in-progress"
	NoteDone       NoteStatus = "done"
)

// ValidNoteStatuses is the canonical set of accepted kanban column names.
var ValidNoteStatuses = map[NoteStatus]bool{
	NoteTodo:       true,
	NoteInProgress: true,
	NoteDone:       true,
}

// ParseNoteStatus maps a raw status string to a NoteStatus.
// Unknown values are reported via ok=false; callers decide the default.
func ParseNoteStatus(s string) (NoteStatus, bool) {
	st := NoteStatus(s)
	if ValidNoteStatuses[st] {
		return st, true
	}
	return NoteTodo, false
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)
