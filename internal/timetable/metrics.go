package timetable

import (
	"sort"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

// longBreakThreshold marks a gap as a long break, in minutes.
const longBreakThreshold = 60

// ComputeMetrics derives the descriptive statistics for one candidate
// schedule. Gap accounting walks each day's slots in start order against a
// running latest-end, so overlapping or nested slots never produce negative
// gaps. Free days follow the five-weekday model: Saturday or Sunday
// activity does not reduce free-day credit.
func ComputeMetrics(entries []models.SelectedCourse) models.ScheduleMetrics {
	byDay := make(map[models.Weekday][]models.TimeSlot)
	for _, entry := range entries {
		for _, slot := range entry.Section.Slots {
			byDay[slot.Day] = append(byDay[slot.Day], slot)
		}
	}

	metrics := models.ScheduleMetrics{
		EarliestStart: 24 * 60,
	}

	days := make([]models.Weekday, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var dayStarts, dayEnds []int
	weekdaysUsed := 0

	for _, day := range days {
		slots := byDay[day]
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Start != slots[j].Start {
				return slots[i].Start < slots[j].Start
			}
			return slots[i].End < slots[j].End
		})

		dayStart := slots[0].Start
		dayEnd := slots[0].End
		runningEnd := slots[0].End
		for _, slot := range slots[1:] {
			if slot.End > dayEnd {
				dayEnd = slot.End
			}
			if gap := slot.Start - runningEnd; gap > 0 {
				metrics.TotalGapMinutes += gap
				metrics.GapCount++
				if gap > metrics.MaxGapMinutes {
					metrics.MaxGapMinutes = gap
				}
				if gap >= longBreakThreshold {
					metrics.LongBreakCount++
					metrics.LongBreakMinutes += gap
				}
			}
			if slot.End > runningEnd {
				runningEnd = slot.End
			}
		}

		metrics.TotalSpanMinutes += dayEnd - dayStart
		dayStarts = append(dayStarts, dayStart)
		dayEnds = append(dayEnds, dayEnd)
		if day.IsWeekday() {
			weekdaysUsed++
		}
		if dayStart < metrics.EarliestStart {
			metrics.EarliestStart = dayStart
		}
		if dayEnd > metrics.LatestEnd {
			metrics.LatestEnd = dayEnd
		}
	}

	metrics.DaysUsed = weekdaysUsed
	metrics.FreeDays = 5 - weekdaysUsed
	if metrics.FreeDays < 0 {
		metrics.FreeDays = 0
	}

	if len(dayStarts) == 0 {
		metrics.EarliestStart = 0
		return metrics
	}

	metrics.AvgStartMinutes = mean(dayStarts)
	metrics.AvgEndMinutes = mean(dayEnds)
	metrics.StartVariance = variance(dayStarts, metrics.AvgStartMinutes)
	return metrics
}

func mean(values []int) float64 {
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// variance is the population variance, matching how the start spread feeds
// the consistentStart preference.
func variance(values []int, avg float64) float64 {
	var total float64
	for _, v := range values {
		diff := float64(v) - avg
		total += diff * diff
	}
	return total / float64(len(values))
}
