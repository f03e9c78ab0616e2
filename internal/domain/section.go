package domain

// Section maps to a level-2 markdown heading. Its total time is kept
// equal to the sum of its subsections' totals by the timer.
type Section struct {
	Title            string
	TotalTimeSeconds int
	Color            string // hex, "" when absent
	Subsections      []*Subsection
}

// Subsection maps to a level-3 heading and is the unit that carries
// notes and accumulates timer seconds.
type Subsection struct {
	Title            string
	TotalTimeSeconds int
	Color            string
	Notes            []Note
}

// Subsection returns the child with the given title, or nil.
func (s *Section) Subsection(title string) *Subsection {
	for _, sub := range s.Subsections {
		if sub.Title == title {
			return sub
		}
	}
	return nil
}

func (s *Section) subsectionIndex(title string) int {
	for i, sub := range s.Subsections {
		if sub.Title == title {
			return i
		}
	}
	return -1
}

// RemoveSubsection deletes the child with the given title. Sibling
// order and times are untouched.
func (s *Section) RemoveSubsection(title string) bool {
	i := s.subsectionIndex(title)
	if i < 0 {
		return false
	}
	s.Subsections = append(s.Subsections[:i], s.Subsections[i+1:]...)
	return true
}

// MoveSubsection swaps the child with its neighbor in the given direction.
func (s *Section) MoveSubsection(title string, dir MoveDirection) bool {
	i := s.subsectionIndex(title)
	if i < 0 {
		return false
	}
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(s.Subsections) {
		return false
	}
	s.Subsections[i], s.Subsections[j] = s.Subsections[j], s.Subsections[i]
	return true
}

// SumSubsectionTimes returns the sum of the children's totals.
func (s *Section) SumSubsectionTimes() int {
	total := 0
	for _, sub := range s.Subsections {
		total += sub.TotalTimeSeconds
	}
	return total
}

// NoteByID returns the note with the given ID, or nil. Notes are
// addressed by ID rather than position so lookups stay stable while
// the board is being reordered.
func (sub *Subsection) NoteByID(id int64) *Note {
	for i := range sub.Notes {
		if sub.Notes[i].ID == id {
			return &sub.Notes[i]
		}
	}
	return nil
}

// RemoveNoteByID deletes the note with the given ID.
func (sub *Subsection) RemoveNoteByID(id int64) bool {
	for i := range sub.Notes {
		if sub.Notes[i].ID == id {
			sub.Notes = append(sub.Notes[:i], sub.Notes[i+1:]...)
			return true
		}
	}
	return false
}
