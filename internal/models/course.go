package models

// Weekday indexes days Monday=1 through Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "MONDAY",
	Tuesday:   "TUESDAY",
	Wednesday: "WEDNESDAY",
	Thursday:  "THURSDAY",
	Friday:    "FRIDAY",
	Saturday:  "SATURDAY",
	Sunday:    "SUNDAY",
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsWeekday reports whether d falls on the five-day teaching week.
func (d Weekday) IsWeekday() bool {
	return d >= Monday && d <= Friday
}

// SectionKind classifies a section offering. The set is open: catalogs may
// carry kinds beyond the canonical three (e.g. seminar groups).
type SectionKind string

const (
	KindLecture  SectionKind = "LEC"
	KindTutorial SectionKind = "TUT"
	KindLab      SectionKind = "LAB"
)

// TimeSlot is one weekly meeting. Start and End are minutes since midnight;
// the interval is half-open, so touching endpoints do not overlap.
type TimeSlot struct {
	Day   Weekday `json:"day"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Room  string  `json:"room,omitempty"`
}

// Section is one offering of a course.
type Section struct {
	ID            string      `json:"id"`
	Kind          SectionKind `json:"kind"`
	ParentLecture string      `json:"parent_lecture,omitempty"`
	Slots         []TimeSlot  `json:"slots"`
	Quota         int         `json:"quota"`
	Enrolled      int         `json:"enrolled"`
	SeatsLeft     *int        `json:"seats_left,omitempty"`
}

// SeatsRemaining returns the number of open seats. An explicit seats_left
// value is authoritative over quota minus enrolled.
func (s *Section) SeatsRemaining() int {
	if s.SeatsLeft != nil {
		return *s.SeatsLeft
	}
	remaining := s.Quota - s.Enrolled
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasAvailableSeats reports whether the section currently has open seats.
// Full sections remain selectable; availability only influences scoring.
func (s *Section) HasAvailableSeats() bool {
	return s.SeatsRemaining() > 0
}

// Course is an immutable catalog entry.
type Course struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Credits     float64   `json:"credits"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
}

// Lectures returns the course's lecture sections.
func (c *Course) Lectures() []*Section {
	var lectures []*Section
	for i := range c.Sections {
		if c.Sections[i].Kind == KindLecture {
			lectures = append(lectures, &c.Sections[i])
		}
	}
	return lectures
}

// FindSection looks up a section by its identifier.
func (c *Course) FindSection(id string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// Pagination carries list metadata for the response envelope.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
