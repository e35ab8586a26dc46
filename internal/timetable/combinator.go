package timetable

import (
	"context"
	"sort"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

// courseOptions holds the expanded placement groups for one schedulable course.
type courseOptions struct {
	course *models.Course
	groups []PlacementGroup
}

// combine runs a depth-first backtracking search across the per-course
// placement groups, pruning any group that conflicts with sections already
// placed. The search stops once limit complete schedules are recorded, so
// enumeration is approximate by design on large inputs. Returns early with
// whatever was found when ctx is cancelled.
func combine(ctx context.Context, courses []courseOptions, limit int) ([][]models.SelectedCourse, error) {
	if len(courses) == 0 || limit <= 0 {
		return nil, nil
	}

	// Most-constrained courses first: fewer options near the root means
	// conflicts surface before the search fans out.
	ordered := make([]courseOptions, len(courses))
	copy(ordered, courses)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].groups) != len(ordered[j].groups) {
			return len(ordered[i].groups) < len(ordered[j].groups)
		}
		return ordered[i].course.Code < ordered[j].course.Code
	})

	search := &combinator{
		courses: ordered,
		cache:   newConflictCache(),
		limit:   limit,
	}
	err := search.place(ctx, 0, nil)
	return search.results, err
}

type combinator struct {
	courses []courseOptions
	cache   *conflictCache
	limit   int
	results [][]models.SelectedCourse
}

func (s *combinator) place(ctx context.Context, index int, partial []models.SelectedCourse) error {
	if len(s.results) >= s.limit {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if index == len(s.courses) {
		complete := make([]models.SelectedCourse, len(partial))
		copy(complete, partial)
		s.results = append(s.results, complete)
		return nil
	}

	for _, group := range s.courses[index].groups {
		if s.groupConflicts(group, partial) {
			continue
		}
		next := make([]models.SelectedCourse, 0, len(partial)+len(group))
		next = append(next, partial...)
		next = append(next, group...)
		if err := s.place(ctx, index+1, next); err != nil {
			return err
		}
		if len(s.results) >= s.limit {
			return nil
		}
	}
	return nil
}

func (s *combinator) groupConflicts(group PlacementGroup, partial []models.SelectedCourse) bool {
	for _, candidate := range group {
		for _, placed := range partial {
			if s.cache.conflicts(candidate, placed) {
				return true
			}
		}
	}
	return false
}
