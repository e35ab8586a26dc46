package timetable

import (
	"math"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

// Seat availability is additive background pressure on every ranking: a
// moderate amount per open section plus a little extra when the whole
// schedule is open. It breaks ties but never outweighs a clear preference
// score difference, which operates on a much larger scale.
const (
	seatBonusPerSection  = 10.0
	seatBonusAllOpen     = 25.0
	moderateStartMinutes = 10 * 60
)

// SeatScore computes the seat-availability bonus for a candidate schedule.
func SeatScore(entries []models.SelectedCourse) float64 {
	if len(entries) == 0 {
		return 0
	}
	score := 0.0
	allOpen := true
	for _, entry := range entries {
		if entry.Section.HasAvailableSeats() {
			score += seatBonusPerSection
		} else {
			allOpen = false
		}
	}
	if allOpen {
		score += seatBonusAllOpen
	}
	return score
}

// PreferenceScore maps schedule metrics onto a scalar for the active
// preference; higher is better. The reward/penalty directions are the
// contract, the exact weights are tuned so that the primary metric of each
// preference dominates its secondary nudges.
func PreferenceScore(m models.ScheduleMetrics, pref Preference) float64 {
	switch pref {
	case PreferenceShortBreaks:
		score := -2*float64(m.TotalGapMinutes) - float64(m.MaxGapMinutes)
		score -= 0.05 * math.Abs(m.AvgStartMinutes-moderateStartMinutes)
		return score
	case PreferenceLongBreaks:
		score := 120*float64(m.LongBreakCount) + 0.5*float64(m.LongBreakMinutes)
		score -= 0.02 * float64(m.TotalSpanMinutes)
		return score
	case PreferenceConsistentStart:
		return -0.5*m.StartVariance - 0.01*float64(m.TotalGapMinutes)
	case PreferenceStartLate:
		return 2*m.AvgStartMinutes + float64(m.EarliestStart)
	case PreferenceEndEarly:
		return -2*m.AvgEndMinutes - float64(m.LatestEnd)
	case PreferenceDaysOff:
		return 500*float64(m.FreeDays) - 100*float64(m.DaysUsed) - 0.05*float64(m.TotalGapMinutes)
	default:
		// Neutral: mildly favour more free days and fewer gap minutes.
		return 10*float64(m.FreeDays) - 0.05*float64(m.TotalGapMinutes)
	}
}

// Candidate is one scored, conflict-free schedule.
type Candidate struct {
	Sections        []models.SelectedCourse
	Metrics         models.ScheduleMetrics
	SeatScore       float64
	PreferenceScore float64
	Score           float64
	fingerprint     string
}

// Fingerprint is the candidate's stable identity: its course/section pairs
// joined in placement order.
func (c *Candidate) Fingerprint() string {
	if c.fingerprint == "" {
		c.fingerprint = PlacementGroup(c.Sections).fingerprint()
	}
	return c.fingerprint
}

func newCandidate(sections []models.SelectedCourse, pref Preference) *Candidate {
	metrics := ComputeMetrics(sections)
	seat := SeatScore(sections)
	prefScore := PreferenceScore(metrics, pref)
	candidate := &Candidate{
		Sections:        sections,
		Metrics:         metrics,
		SeatScore:       seat,
		PreferenceScore: prefScore,
		Score:           prefScore + seat,
	}
	candidate.Fingerprint()
	return candidate
}

// Compare defines the total order over candidates for the given preference.
// The combined score ranks first: the seat bonus rides on top of the
// preference score, so equal preference scores fall through to seat
// availability while a clear preference difference still dominates the
// bounded seat bonus. Remaining ties run the preference's secondary metric
// chain and finally the lexicographic fingerprint, so two runs over the
// same input always agree. Returns a negative value when a sorts before b.
func Compare(a, b *Candidate, pref Preference) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	for _, cmp := range secondaryOrder(pref) {
		if result := cmp(a.Metrics, b.Metrics); result != 0 {
			return result
		}
	}
	if a.Fingerprint() < b.Fingerprint() {
		return -1
	}
	if a.Fingerprint() > b.Fingerprint() {
		return 1
	}
	return 0
}

type metricCompare func(a, b models.ScheduleMetrics) int

func ascInt(get func(models.ScheduleMetrics) int) metricCompare {
	return func(a, b models.ScheduleMetrics) int {
		va, vb := get(a), get(b)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	}
}

func descInt(get func(models.ScheduleMetrics) int) metricCompare {
	asc := ascInt(get)
	return func(a, b models.ScheduleMetrics) int { return -asc(a, b) }
}

func ascFloat(get func(models.ScheduleMetrics) float64) metricCompare {
	return func(a, b models.ScheduleMetrics) int {
		va, vb := get(a), get(b)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	}
}

func descFloat(get func(models.ScheduleMetrics) float64) metricCompare {
	asc := ascFloat(get)
	return func(a, b models.ScheduleMetrics) int { return -asc(a, b) }
}

// secondaryOrder lists each preference's tie-break chain, applied in order
// after the preference score and seat bonus are exhausted.
func secondaryOrder(pref Preference) []metricCompare {
	switch pref {
	case PreferenceShortBreaks:
		return []metricCompare{
			ascInt(func(m models.ScheduleMetrics) int { return m.TotalGapMinutes }),
			ascInt(func(m models.ScheduleMetrics) int { return m.MaxGapMinutes }),
			descInt(func(m models.ScheduleMetrics) int { return m.FreeDays }),
		}
	case PreferenceLongBreaks:
		return []metricCompare{
			descInt(func(m models.ScheduleMetrics) int { return m.LongBreakCount }),
			descInt(func(m models.ScheduleMetrics) int { return m.LongBreakMinutes }),
		}
	case PreferenceConsistentStart:
		return []metricCompare{
			ascFloat(func(m models.ScheduleMetrics) float64 { return m.StartVariance }),
			ascInt(func(m models.ScheduleMetrics) int { return m.TotalGapMinutes }),
		}
	case PreferenceStartLate:
		return []metricCompare{
			descFloat(func(m models.ScheduleMetrics) float64 { return m.AvgStartMinutes }),
			descInt(func(m models.ScheduleMetrics) int { return m.EarliestStart }),
		}
	case PreferenceEndEarly:
		return []metricCompare{
			ascFloat(func(m models.ScheduleMetrics) float64 { return m.AvgEndMinutes }),
			ascInt(func(m models.ScheduleMetrics) int { return m.LatestEnd }),
		}
	case PreferenceDaysOff:
		return []metricCompare{
			descInt(func(m models.ScheduleMetrics) int { return m.FreeDays }),
			ascInt(func(m models.ScheduleMetrics) int { return m.DaysUsed }),
			ascFloat(func(m models.ScheduleMetrics) float64 { return m.AvgEndMinutes }),
		}
	default:
		return []metricCompare{
			descInt(func(m models.ScheduleMetrics) int { return m.FreeDays }),
			ascInt(func(m models.ScheduleMetrics) int { return m.TotalGapMinutes }),
		}
	}
}
