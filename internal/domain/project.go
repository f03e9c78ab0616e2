package domain

// Project is the in-memory model of one tracked markdown document.
// Section order mirrors document order; the document text itself is
// the persisted source of truth and this tree is rebuilt from it.
type Project struct {
	Name             string
	TotalTimeSeconds int
	DailyWork        map[string]int // ISO date -> accumulated seconds
	TimelineStart    *string        // ISO date, nil when not set
	TimelineEnd      *string
	Events           []Event
	Sections         []*Section
}

func NewProject(name string) *Project {
	return &Project{
		Name:      name,
		DailyWork: map[string]int{},
	}
}

// Section returns the section with the given title, or nil.
// Titles are the join key between headings and the model, so lookups
// are always by exact title.
func (p *Project) Section(title string) *Section {
	for _, s := range p.Sections {
		if s.Title == title {
			return s
		}
	}
	return nil
}

func (p *Project) sectionIndex(title string) int {
	for i, s := range p.Sections {
		if s.Title == title {
			return i
		}
	}
	return -1
}

// RemoveSection deletes the section with the given title and all its
// subsections. Returns false if no such section exists.
func (p *Project) RemoveSection(title string) bool {
	i := p.sectionIndex(title)
	if i < 0 {
		return false
	}
	p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
	return true
}

// MoveSection swaps the section with its neighbor in the given
// direction. Moving past either end is a no-op.
func (p *Project) MoveSection(title string, dir MoveDirection) bool {
	i := p.sectionIndex(title)
	if i < 0 {
		return false
	}
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(p.Sections) {
		return false
	}
	p.Sections[i], p.Sections[j] = p.Sections[j], p.Sections[i]
	return true
}

// UsedColors returns the colors currently assigned to sections.
func (p *Project) UsedColors() []string {
	var colors []string
	for _, s := range p.Sections {
		if s.Color != "" {
			colors = append(colors, s.Color)
		}
	}
	return colors
}

// SumSectionTimes returns the sum of all section totals. When the
// lockstep accumulation invariant holds it equals TotalTimeSeconds.
func (p *Project) SumSectionTimes() int {
	total := 0
	for _, s := range p.Sections {
		total += s.TotalTimeSeconds
	}
	return total
}

// RemoveEvent deletes the timeline event with the given ID.
func (p *Project) RemoveEvent(id int64) bool {
	for i, ev := range p.Events {
		if ev.ID == id {
			p.Events = append(p.Events[:i], p.Events[i+1:]...)
			return true
		}
	}
	return false
}
