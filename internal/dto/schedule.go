package dto

// GenerateScheduleRequest asks the engine for ranked timetable candidates
// across the named catalog courses.
type GenerateScheduleRequest struct {
	Courses             []string `json:"courses" validate:"required,min=1,max=16,dive,required"`
	Preference          string   `json:"preference" validate:"omitempty,oneof=shortBreaks longBreaks consistentStart startLate endEarly daysOff"`
	MaxResults          int      `json:"maxResults" validate:"omitempty,min=1"`
	ExcludeFullSections bool     `json:"excludeFullSections"`
}

// TimeSlotView renders one weekly meeting with clock-formatted times.
type TimeSlotView struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
	Room  string `json:"room,omitempty"`
}

// ScheduleEntry is one selected section within a candidate schedule.
type ScheduleEntry struct {
	CourseCode     string         `json:"courseCode"`
	CourseName     string         `json:"courseName"`
	SectionID      string         `json:"sectionId"`
	Kind           string         `json:"kind"`
	ParentLecture  string         `json:"parentLecture,omitempty"`
	Slots          []TimeSlotView `json:"slots"`
	Color          string         `json:"color,omitempty"`
	SeatsRemaining int            `json:"seatsRemaining"`
}

// CandidateMetadata carries the derived statistics and score components for
// one candidate.
type CandidateMetadata struct {
	TotalGapMinutes  int     `json:"totalGapMinutes"`
	GapCount         int     `json:"gapCount"`
	MaxGapMinutes    int     `json:"maxGapMinutes"`
	TotalSpanMinutes int     `json:"totalSpanMinutes"`
	DaysUsed         int     `json:"daysUsed"`
	FreeDays         int     `json:"freeDays"`
	AvgStartMinutes  float64 `json:"avgStartMinutes"`
	AvgEndMinutes    float64 `json:"avgEndMinutes"`
	EarliestStart    int     `json:"earliestStart"`
	LatestEnd        int     `json:"latestEnd"`
	StartVariance    float64 `json:"startVariance"`
	LongBreakCount   int     `json:"longBreakCount"`
	LongBreakMinutes int     `json:"longBreakMinutes"`
	SeatScore        float64 `json:"seatScore"`
	PreferenceScore  float64 `json:"preferenceScore"`
}

// ScheduleCandidate is one ranked, conflict-free schedule.
type ScheduleCandidate struct {
	Sections []ScheduleEntry   `json:"sections"`
	Score    float64           `json:"score"`
	Metadata CandidateMetadata `json:"metadata"`
}

// GenerationWarning reports catalog entries excluded from the search.
type GenerationWarning struct {
	CourseCode string `json:"courseCode"`
	SectionID  string `json:"sectionId,omitempty"`
	Reason     string `json:"reason"`
}

// GenerateScheduleResponse returns the ranked candidates for one run.
type GenerateScheduleResponse struct {
	RunID      string              `json:"runId"`
	Candidates []ScheduleCandidate `json:"candidates"`
	Warnings   []GenerationWarning `json:"warnings,omitempty"`
}
