package timetable

import (
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

func slot(day models.Weekday, start, end string) models.TimeSlot {
	return models.TimeSlot{Day: day, Start: ParseClock(start), End: ParseClock(end)}
}

func intPtr(v int) *int {
	return &v
}

func lecture(id string, slots ...models.TimeSlot) models.Section {
	return models.Section{ID: id, Kind: models.KindLecture, Slots: slots, Quota: 100, Enrolled: 10}
}

func tutorial(id, parent string, slots ...models.TimeSlot) models.Section {
	return models.Section{ID: id, Kind: models.KindTutorial, ParentLecture: parent, Slots: slots, Quota: 40, Enrolled: 5}
}

func lab(id, parent string, slots ...models.TimeSlot) models.Section {
	return models.Section{ID: id, Kind: models.KindLab, ParentLecture: parent, Slots: slots, Quota: 30, Enrolled: 5}
}

func full(section models.Section) models.Section {
	section.SeatsLeft = intPtr(0)
	return section
}

func course(code string, sections ...models.Section) *models.Course {
	return &models.Course{
		Code:       code,
		Name:       code,
		Department: "CSCI",
		Credits:    3,
		Sections:   sections,
	}
}

// selectionsByCourse groups one candidate's entries by course code.
func selectionsByCourse(entries []models.SelectedCourse) map[string][]models.SelectedCourse {
	grouped := make(map[string][]models.SelectedCourse)
	for _, entry := range entries {
		grouped[entry.Course.Code] = append(grouped[entry.Course.Code], entry)
	}
	return grouped
}
