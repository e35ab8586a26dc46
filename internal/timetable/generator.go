package timetable

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

const (
	// DefaultMaxResults caps the returned candidate list when the caller
	// does not say otherwise.
	DefaultMaxResults = 100
	// DefaultOverGenerateFactor controls how many candidates beyond the
	// result cap the search materialises before scoring, leaving headroom
	// for ranking to surface better schedules than the first ones found.
	DefaultOverGenerateFactor = 4
)

// sectionColors is the display palette cycled across input courses.
var sectionColors = []string{
	"#4C6EF5", "#12B886", "#FA5252", "#FAB005",
	"#7950F2", "#15AABF", "#E64980", "#82C91E",
}

// Options configures one generation run.
type Options struct {
	Preference          Preference
	MaxResults          int
	ExcludeFullSections bool
	OverGenerateFactor  int
	Logger              *zap.Logger
}

// Warning reports a catalog entry that was excluded from the search rather
// than aborting it. One bad course never blocks schedules for the rest.
type Warning struct {
	CourseCode string `json:"course_code"`
	SectionID  string `json:"section_id,omitempty"`
	Reason     string `json:"reason"`
}

// Result is the outcome of one generation run.
type Result struct {
	Candidates []*Candidate
	Warnings   []Warning
}

// Generate enumerates conflict-free schedules across the given courses and
// returns them ranked by the active preference.
//
// The search is bounded: at most MaxResults*OverGenerateFactor complete
// schedules are materialised before scoring, then the ranked list is capped
// to MaxResults. Reaching the bound is normal early termination, not an
// error, so results are a valid sample rather than a guaranteed-optimal
// global enumeration. The only error returned is ctx cancellation, and even
// then any candidates found so far are ranked and returned alongside it.
func Generate(ctx context.Context, courses []*models.Course, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.OverGenerateFactor <= 0 {
		opts.OverGenerateFactor = DefaultOverGenerateFactor
	}

	result := &Result{}
	if len(courses) == 0 {
		return result, nil
	}

	schedulable := make([]courseOptions, 0, len(courses))
	for index, course := range courses {
		cleaned, warnings := sanitizeCourse(course)
		result.Warnings = append(result.Warnings, warnings...)
		if cleaned == nil {
			continue
		}

		color := sectionColors[index%len(sectionColors)]
		groups := ExpandCourse(cleaned, opts.ExcludeFullSections, opts.Preference, color)
		if len(groups) == 0 {
			result.Warnings = append(result.Warnings, Warning{
				CourseCode: course.Code,
				Reason:     "no schedulable section combinations; course excluded",
			})
			logger.Debug("course excluded from search",
				zap.String("course", course.Code))
			continue
		}
		schedulable = append(schedulable, courseOptions{course: cleaned, groups: groups})
	}

	searchLimit := opts.MaxResults * opts.OverGenerateFactor
	schedules, err := combine(ctx, schedulable, searchLimit)
	logger.Debug("combination search finished",
		zap.Int("courses", len(schedulable)),
		zap.Int("schedules", len(schedules)),
		zap.Int("limit", searchLimit))

	candidates := make([]*Candidate, 0, len(schedules))
	for _, sections := range schedules {
		candidates = append(candidates, newCandidate(sections, opts.Preference))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return Compare(candidates[i], candidates[j], opts.Preference) < 0
	})
	if len(candidates) > opts.MaxResults {
		candidates = candidates[:opts.MaxResults]
	}
	result.Candidates = candidates
	return result, err
}

// sanitizeCourse applies the permissive validation pass: sections with
// malformed slots or dangling parent-lecture references are dropped with a
// warning, and a course left without any lecture is excluded entirely. The
// caller's catalog is never mutated; a filtered copy is returned.
func sanitizeCourse(course *models.Course) (*models.Course, []Warning) {
	var warnings []Warning

	lectureIDs := make(map[string]struct{})
	for _, section := range course.Sections {
		if section.Kind == models.KindLecture {
			lectureIDs[section.ID] = struct{}{}
		}
	}

	kept := make([]models.Section, 0, len(course.Sections))
	for _, section := range course.Sections {
		if badSlot := invalidSlot(section.Slots); badSlot {
			warnings = append(warnings, Warning{
				CourseCode: course.Code,
				SectionID:  section.ID,
				Reason:     "section has a malformed time slot; section excluded",
			})
			continue
		}
		if section.Kind != models.KindLecture && section.ParentLecture != "" {
			if _, ok := lectureIDs[section.ParentLecture]; !ok {
				warnings = append(warnings, Warning{
					CourseCode: course.Code,
					SectionID:  section.ID,
					Reason:     "section references a nonexistent parent lecture; section excluded",
				})
				continue
			}
		}
		kept = append(kept, section)
	}

	hasLecture := false
	for _, section := range kept {
		if section.Kind == models.KindLecture {
			hasLecture = true
			break
		}
	}
	if !hasLecture {
		warnings = append(warnings, Warning{
			CourseCode: course.Code,
			Reason:     "course has no lecture sections; course excluded",
		})
		return nil, warnings
	}

	cleaned := *course
	cleaned.Sections = kept
	return &cleaned, warnings
}

func invalidSlot(slots []models.TimeSlot) bool {
	for _, slot := range slots {
		if slot.Day < models.Monday || slot.Day > models.Sunday {
			return true
		}
		if slot.Start >= slot.End || slot.Start < 0 {
			return true
		}
	}
	return false
}
