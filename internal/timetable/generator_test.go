package timetable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

func generate(t *testing.T, courses []*models.Course, opts Options) *Result {
	t.Helper()
	result, err := Generate(context.Background(), courses, opts)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestGenerateEmptyInput(t *testing.T) {
	result := generate(t, nil, Options{})

	assert.Empty(t, result.Candidates)
	assert.Empty(t, result.Warnings)
}

func TestGenerateSingleCourseSingleLecture(t *testing.T) {
	c := course("CSCI1010", lecture("L1", slot(models.Monday, "09:00", "10:00")))

	result := generate(t, []*models.Course{c}, Options{})

	require.Len(t, result.Candidates, 1)
	require.Len(t, result.Candidates[0].Sections, 1)
	assert.Equal(t, "L1", result.Candidates[0].Sections[0].Section.ID)
}

func TestGenerateTwoLectureScenarioSeatBonusDecides(t *testing.T) {
	// CSCI1120: lecture A with tutorial AT01 (all open) versus lecture B
	// (full) with tutorial BT01. Both candidates are valid; A must rank
	// first on seat availability.
	c := course("CSCI1120",
		lecture("A", slot(models.Monday, "15:30", "16:15"), slot(models.Wednesday, "11:30", "13:15")),
		tutorial("AT01", "A", slot(models.Tuesday, "13:30", "14:15")),
		full(lecture("B", slot(models.Monday, "11:30", "13:15"), slot(models.Wednesday, "10:30", "11:15"))),
		tutorial("BT01", "B", slot(models.Wednesday, "11:30", "12:15")),
	)

	result := generate(t, []*models.Course{c}, Options{Preference: PreferenceNone})

	require.Len(t, result.Candidates, 2)
	for _, candidate := range result.Candidates {
		require.Len(t, candidate.Sections, 2)
	}

	winner := result.Candidates[0]
	assert.Equal(t, "A", winner.Sections[0].Section.ID)
	assert.Equal(t, "AT01", winner.Sections[1].Section.ID)
	assert.Greater(t, winner.SeatScore, result.Candidates[1].SeatScore)
}

func TestGenerateComplexCourseYieldsFiveCandidates(t *testing.T) {
	c := course("CSCI2100",
		lecture("A", slot(models.Monday, "09:00", "10:00")),
		lecture("B", slot(models.Tuesday, "09:00", "10:00")),
		tutorial("AT1", "A", slot(models.Monday, "10:00", "11:00")),
		tutorial("AT2", "A", slot(models.Monday, "11:00", "12:00")),
		lab("AL1", "A", slot(models.Wednesday, "09:00", "11:00")),
		lab("AL2", "A", slot(models.Wednesday, "14:00", "16:00")),
		tutorial("BT1", "B", slot(models.Tuesday, "10:00", "11:00")),
		lab("BL1", "B", slot(models.Thursday, "09:00", "11:00")),
	)

	result := generate(t, []*models.Course{c}, Options{})

	require.Len(t, result.Candidates, 5)
	for _, candidate := range result.Candidates {
		assert.Len(t, candidate.Sections, 3)
	}
}

func TestGenerateConflictFiltering(t *testing.T) {
	x := course("XCRS1000",
		lecture("X1", slot(models.Monday, "09:00", "10:00")),
		lecture("X2", slot(models.Tuesday, "09:00", "10:00")),
	)
	y := course("YCRS1000", lecture("Y1", slot(models.Monday, "09:30", "10:30")))

	result := generate(t, []*models.Course{x, y}, Options{})

	require.Len(t, result.Candidates, 1)
	grouped := selectionsByCourse(result.Candidates[0].Sections)
	require.Len(t, grouped["XCRS1000"], 1)
	require.Len(t, grouped["YCRS1000"], 1)
	assert.Equal(t, "X2", grouped["XCRS1000"][0].Section.ID)
	assert.Equal(t, "Y1", grouped["YCRS1000"][0].Section.ID)
}

func TestGenerateNoConflictInvariant(t *testing.T) {
	courses := []*models.Course{
		course("CSCI2100",
			lecture("A", slot(models.Monday, "09:00", "10:00")),
			lecture("B", slot(models.Tuesday, "09:00", "10:00")),
			tutorial("AT1", "A", slot(models.Monday, "10:00", "11:00")),
			tutorial("BT1", "B", slot(models.Tuesday, "10:00", "11:00")),
		),
		course("MATH2040",
			lecture("L1", slot(models.Monday, "09:30", "10:30")),
			lecture("L2", slot(models.Wednesday, "09:00", "10:00")),
		),
		course("PHYS1003", lecture("L1", slot(models.Friday, "09:00", "12:00"))),
	}

	result := generate(t, courses, Options{})
	require.NotEmpty(t, result.Candidates)

	for _, candidate := range result.Candidates {
		entries := candidate.Sections
		for i := range entries {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].Course.Code == entries[j].Course.Code {
					continue
				}
				assert.False(t, SectionsConflict(entries[i].Section, entries[j].Section),
					"cross-course conflict between %s and %s", entries[i].Fingerprint(), entries[j].Fingerprint())
			}
		}
	}
}

func TestGenerateCompletenessAndParentConsistency(t *testing.T) {
	courses := []*models.Course{
		course("CSCI2100",
			lecture("A", slot(models.Monday, "09:00", "10:00")),
			lecture("B", slot(models.Tuesday, "09:00", "10:00")),
			tutorial("AT1", "A", slot(models.Monday, "10:00", "11:00")),
			tutorial("BT1", "B", slot(models.Tuesday, "10:00", "11:00")),
			lab("LBU", "", slot(models.Friday, "14:00", "16:00")),
		),
		course("MATH2040", lecture("L1", slot(models.Wednesday, "09:00", "10:00"))),
	}

	result := generate(t, courses, Options{})
	require.NotEmpty(t, result.Candidates)

	for _, candidate := range result.Candidates {
		grouped := selectionsByCourse(candidate.Sections)
		require.Len(t, grouped, 2)

		csci := grouped["CSCI2100"]
		require.Len(t, csci, 3)
		kindCount := map[models.SectionKind]int{}
		var lectureID string
		for _, entry := range csci {
			kindCount[entry.Section.Kind]++
			if entry.Section.Kind == models.KindLecture {
				lectureID = entry.Section.ID
			}
		}
		assert.Equal(t, 1, kindCount[models.KindLecture])
		assert.Equal(t, 1, kindCount[models.KindTutorial])
		assert.Equal(t, 1, kindCount[models.KindLab])

		for _, entry := range csci {
			if entry.Section.ParentLecture != "" {
				assert.Equal(t, lectureID, entry.Section.ParentLecture,
					"dependent section must match the chosen lecture")
			}
		}
	}
}

func TestGenerateBadCourseDoesNotBlockOthers(t *testing.T) {
	broken := course("BROKEN", tutorial("T1", "", slot(models.Monday, "09:00", "10:00")))
	valid := course("CSCI1010", lecture("L1", slot(models.Tuesday, "09:00", "10:00")))

	result := generate(t, []*models.Course{broken, valid}, Options{})

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "CSCI1010", result.Candidates[0].Sections[0].Course.Code)

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "BROKEN", result.Warnings[len(result.Warnings)-1].CourseCode)
}

func TestGenerateDanglingParentSectionExcluded(t *testing.T) {
	c := course("CSCI1130",
		lecture("L1", slot(models.Monday, "09:00", "10:00")),
		tutorial("T1", "GHOST", slot(models.Tuesday, "09:00", "10:00")),
	)

	result := generate(t, []*models.Course{c}, Options{})

	// The dangling tutorial is dropped; the lecture alone remains legal.
	require.Len(t, result.Candidates, 1)
	require.Len(t, result.Candidates[0].Sections, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "T1", result.Warnings[0].SectionID)
}

func TestGenerateMalformedSlotSectionExcluded(t *testing.T) {
	bad := models.Section{
		ID:   "L2",
		Kind: models.KindLecture,
		Slots: []models.TimeSlot{
			{Day: models.Monday, Start: 600, End: 540}, // inverted
		},
		Quota: 10,
	}
	c := course("CSCI1130", lecture("L1", slot(models.Monday, "09:00", "10:00")), bad)

	result := generate(t, []*models.Course{c}, Options{})

	require.Len(t, result.Candidates, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "L2", result.Warnings[0].SectionID)
}

func TestGenerateHonoursResultCap(t *testing.T) {
	sections := make([]models.Section, 0, 10)
	for _, id := range []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8", "L9", "LA"} {
		sections = append(sections, lecture(id, slot(models.Monday, "09:00", "10:00")))
	}
	c := course("BIGC1000", sections...)

	result := generate(t, []*models.Course{c}, Options{MaxResults: 3, OverGenerateFactor: 1})

	assert.Len(t, result.Candidates, 3)
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	courses := []*models.Course{
		course("CSCI2100",
			lecture("A", slot(models.Monday, "09:00", "10:00")),
			lecture("B", slot(models.Tuesday, "09:00", "10:00")),
			tutorial("AT1", "A", slot(models.Monday, "10:00", "11:00")),
			tutorial("AT2", "A", slot(models.Monday, "11:00", "12:00")),
			tutorial("BT1", "B", slot(models.Tuesday, "10:00", "11:00")),
		),
		course("MATH2040",
			lecture("L1", slot(models.Wednesday, "09:00", "10:00")),
			lecture("L2", slot(models.Thursday, "09:00", "10:00")),
		),
	}

	for _, pref := range append(Preferences(), PreferenceNone) {
		first := generate(t, courses, Options{Preference: pref})
		second := generate(t, courses, Options{Preference: pref})

		require.Equal(t, len(first.Candidates), len(second.Candidates), "preference %q", pref)
		for i := range first.Candidates {
			assert.Equal(t, first.Candidates[i].Fingerprint(), second.Candidates[i].Fingerprint(), "preference %q", pref)
			assert.Equal(t, first.Candidates[i].Score, second.Candidates[i].Score, "preference %q", pref)
		}
	}
}

func TestGenerateMonotonicRankingDaysOff(t *testing.T) {
	// All sections open so the seat bonus is uniform and the primary metric
	// ordering is observable directly.
	courses := []*models.Course{
		course("CSCI2100",
			lecture("A", slot(models.Monday, "09:00", "10:00"), slot(models.Wednesday, "09:00", "10:00")),
			lecture("B", slot(models.Monday, "10:00", "11:00")),
		),
		course("MATH2040",
			lecture("L1", slot(models.Monday, "11:00", "12:00")),
			lecture("L2", slot(models.Friday, "09:00", "10:00")),
		),
	}

	result := generate(t, courses, Options{Preference: PreferenceDaysOff})
	require.True(t, len(result.Candidates) >= 2)

	for i := 0; i+1 < len(result.Candidates); i++ {
		assert.GreaterOrEqual(t,
			result.Candidates[i].Metrics.FreeDays,
			result.Candidates[i+1].Metrics.FreeDays,
			"free days must never increase down the ranking")
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := course("CSCI1010", lecture("L1", slot(models.Monday, "09:00", "10:00")))
	result, err := Generate(ctx, []*models.Course{c}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Candidates)
}
