package models

// SelectedCourse pairs a course with exactly one of its sections. Color is a
// display hint carried through for the rendering layer.
type SelectedCourse struct {
	Course  *Course  `json:"-"`
	Section *Section `json:"-"`
	Color   string   `json:"color,omitempty"`
}

// Fingerprint identifies the selection within one candidate schedule.
func (sc SelectedCourse) Fingerprint() string {
	return sc.Course.Code + "/" + sc.Section.ID
}

// ScheduleMetrics aggregates descriptive statistics for one candidate
// schedule. Derived per generation run, never persisted.
type ScheduleMetrics struct {
	TotalGapMinutes  int     `json:"total_gap_minutes"`
	GapCount         int     `json:"gap_count"`
	MaxGapMinutes    int     `json:"max_gap_minutes"`
	TotalSpanMinutes int     `json:"total_span_minutes"`
	DaysUsed         int     `json:"days_used"`
	FreeDays         int     `json:"free_days"`
	AvgStartMinutes  float64 `json:"avg_start_minutes"`
	AvgEndMinutes    float64 `json:"avg_end_minutes"`
	EarliestStart    int     `json:"earliest_start"`
	LatestEnd        int     `json:"latest_end"`
	StartVariance    float64 `json:"start_variance"`
	LongBreakCount   int     `json:"long_break_count"`
	LongBreakMinutes int     `json:"long_break_minutes"`
}
