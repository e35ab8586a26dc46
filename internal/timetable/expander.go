package timetable

import (
	"sort"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

// PlacementGroup is one legal way to take a course: exactly one lecture plus
// one section of every dependent kind that lecture requires.
type PlacementGroup []models.SelectedCourse

func (g PlacementGroup) fingerprint() string {
	key := ""
	for i, entry := range g {
		if i > 0 {
			key += "|"
		}
		key += entry.Fingerprint()
	}
	return key
}

// ExpandCourse enumerates every placement group for a single course.
//
// For each lecture, non-lecture sections partition into "specific" (parent
// lecture matches) and "universal" (no parent, compatible with any lecture).
// Specific sections override universal ones of the same kind, so a catch-all
// lab never pairs with a lecture that has dedicated labs. When excludeFull
// is set, sections without open seats are dropped before forming groups; a
// lecture whose required kind empties out yields no groups at all.
//
// The returned order front-loads groups likely to satisfy pref. This is a
// search heuristic only and never affects which groups exist.
func ExpandCourse(course *models.Course, excludeFull bool, pref Preference, color string) []PlacementGroup {
	var groups []PlacementGroup

	for _, lecture := range course.Lectures() {
		if excludeFull && !lecture.HasAvailableSeats() {
			continue
		}

		options, ok := dependentOptions(course, lecture, excludeFull)
		if !ok {
			continue
		}

		lectureEntry := models.SelectedCourse{Course: course, Section: lecture, Color: color}
		if len(options) == 0 {
			groups = append(groups, PlacementGroup{lectureEntry})
			continue
		}

		kinds := make([]models.SectionKind, 0, len(options))
		for kind := range options {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		for _, combo := range cartesian(options, kinds) {
			group := make(PlacementGroup, 0, len(combo)+1)
			group = append(group, lectureEntry)
			for _, section := range combo {
				group = append(group, models.SelectedCourse{Course: course, Section: section, Color: color})
			}
			groups = append(groups, group)
		}
	}

	orderGroups(groups, pref)
	return groups
}

// dependentOptions resolves the per-kind option lists for one lecture. The
// second return value is false when a required kind has no viable section
// left, meaning the lecture cannot be legally completed.
func dependentOptions(course *models.Course, lecture *models.Section, excludeFull bool) (map[models.SectionKind][]*models.Section, bool) {
	specific := make(map[models.SectionKind][]*models.Section)
	universal := make(map[models.SectionKind][]*models.Section)

	for i := range course.Sections {
		section := &course.Sections[i]
		if section.Kind == models.KindLecture {
			continue
		}
		switch section.ParentLecture {
		case "":
			universal[section.Kind] = append(universal[section.Kind], section)
		case lecture.ID:
			specific[section.Kind] = append(specific[section.Kind], section)
		}
	}

	// Required kinds are fixed before seat filtering: a kind the lecture
	// structurally needs stays required even if every option is full.
	options := make(map[models.SectionKind][]*models.Section)
	for kind, sections := range universal {
		options[kind] = sections
	}
	for kind, sections := range specific {
		options[kind] = sections
	}

	if excludeFull {
		for kind, sections := range options {
			viable := sections[:0:0]
			for _, section := range sections {
				if section.HasAvailableSeats() {
					viable = append(viable, section)
				}
			}
			if len(viable) == 0 {
				return nil, false
			}
			options[kind] = viable
		}
	}

	return options, true
}

// cartesian expands the per-kind option lists into every unique combination,
// one section per kind, in deterministic kind order.
func cartesian(options map[models.SectionKind][]*models.Section, kinds []models.SectionKind) [][]*models.Section {
	combos := [][]*models.Section{{}}
	for _, kind := range kinds {
		next := make([][]*models.Section, 0, len(combos)*len(options[kind]))
		for _, combo := range combos {
			for _, section := range options[kind] {
				extended := make([]*models.Section, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, section))
			}
		}
		combos = next
	}
	return combos
}

// orderGroups sorts placement groups so that the ones most likely to serve
// the active preference are tried first during backtracking. Ties fall back
// to the group fingerprint to keep expansion deterministic.
func orderGroups(groups []PlacementGroup, pref Preference) {
	key := func(g PlacementGroup) (int, int) {
		days := make(map[models.Weekday]struct{})
		earliest := 24 * 60
		latest := 0
		for _, entry := range g {
			for _, slot := range entry.Section.Slots {
				days[slot.Day] = struct{}{}
				if slot.Start < earliest {
					earliest = slot.Start
				}
				if slot.End > latest {
					latest = slot.End
				}
			}
		}
		switch pref {
		case PreferenceDaysOff:
			return len(days), earliest
		case PreferenceStartLate:
			return -earliest, len(days)
		case PreferenceEndEarly:
			return latest, len(days)
		default:
			return len(days), earliest
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ki1, ki2 := key(groups[i])
		kj1, kj2 := key(groups[j])
		if ki1 != kj1 {
			return ki1 < kj1
		}
		if ki2 != kj2 {
			return ki2 < kj2
		}
		return groups[i].fingerprint() < groups[j].fingerprint()
	})
}
