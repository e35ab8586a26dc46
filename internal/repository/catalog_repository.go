package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/timetable"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
)

// CatalogRepository holds the course catalog in memory. The catalog is loaded
// once at startup and treated as immutable afterwards, so reads need no
// locking.
type CatalogRepository struct {
	courses     []models.Course
	byCode      map[string]int
	departments []string
}

// NewCatalogRepository builds a repository from an already assembled course
// list, preserving input order.
func NewCatalogRepository(courses []models.Course) *CatalogRepository {
	repo := &CatalogRepository{
		courses: courses,
		byCode:  make(map[string]int, len(courses)),
	}

	seen := map[string]struct{}{}
	for i, course := range courses {
		if _, dup := repo.byCode[course.Code]; !dup {
			repo.byCode[course.Code] = i
		}
		if course.Department != "" {
			if _, ok := seen[course.Department]; !ok {
				seen[course.Department] = struct{}{}
				repo.departments = append(repo.departments, course.Department)
			}
		}
	}
	sort.Strings(repo.departments)

	return repo
}

// LoadCatalog reads the catalog file at path. Format is "json" or "csv";
// when empty it is inferred from the file extension.
func LoadCatalog(path, format string, logger *zap.Logger) (*CatalogRepository, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogInvalid.Code, appErrors.ErrCatalogInvalid.Status, fmt.Sprintf("read catalog %s", path))
	}

	var courses []models.Course
	switch strings.ToLower(format) {
	case "json":
		courses, err = parseJSONCatalog(raw)
	case "csv":
		courses, err = parseCSVCatalog(raw)
	default:
		return nil, appErrors.Clone(appErrors.ErrCatalogInvalid, fmt.Sprintf("unsupported catalog format %q", format))
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("catalog loaded",
			zap.String("path", path),
			zap.String("format", strings.ToLower(format)),
			zap.Int("courses", len(courses)),
		)
	}

	return NewCatalogRepository(courses), nil
}

// All returns every catalog course in load order.
func (r *CatalogRepository) All() []models.Course {
	return r.courses
}

// Count returns the number of catalog courses.
func (r *CatalogRepository) Count() int {
	return len(r.courses)
}

// Departments returns the distinct department labels, sorted.
func (r *CatalogRepository) Departments() []string {
	return r.departments
}

// FindByCode looks up a course by its exact code.
func (r *CatalogRepository) FindByCode(code string) (*models.Course, bool) {
	i, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	return &r.courses[i], true
}

// Resolve maps requested course codes to catalog entries, preserving request
// order. Unknown codes are returned separately rather than failing the whole
// lookup.
func (r *CatalogRepository) Resolve(codes []string) ([]*models.Course, []string) {
	resolved := make([]*models.Course, 0, len(codes))
	var missing []string
	for _, code := range codes {
		if course, ok := r.FindByCode(code); ok {
			resolved = append(resolved, course)
		} else {
			missing = append(missing, code)
		}
	}
	return resolved, missing
}

func parseJSONCatalog(raw []byte) ([]models.Course, error) {
	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogInvalid.Code, appErrors.ErrCatalogInvalid.Status, "parse json catalog")
	}
	return courses, nil
}

// catalogRow is one weekly meeting in the flat CSV export. Rows sharing a
// course code and section id are folded into a single section.
type catalogRow struct {
	CourseCode    string  `csv:"course_code"`
	CourseName    string  `csv:"course_name"`
	Department    string  `csv:"department"`
	Credits       float64 `csv:"credits"`
	SectionID     string  `csv:"section_id"`
	Kind          string  `csv:"kind"`
	ParentLecture string  `csv:"parent_lecture"`
	Day           int     `csv:"day"`
	Start         string  `csv:"start"`
	End           string  `csv:"end"`
	Room          string  `csv:"room"`
	Quota         int     `csv:"quota"`
	Enrolled      int     `csv:"enrolled"`
	SeatsLeft     string  `csv:"seats_left"`
}

func parseCSVCatalog(raw []byte) ([]models.Course, error) {
	var rows []catalogRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogInvalid.Code, appErrors.ErrCatalogInvalid.Status, "parse csv catalog")
	}

	var (
		courses      []models.Course
		courseIndex  = map[string]int{}
		sectionIndex = map[string]int{}
	)

	for _, row := range rows {
		if row.CourseCode == "" || row.SectionID == "" {
			continue
		}

		ci, ok := courseIndex[row.CourseCode]
		if !ok {
			ci = len(courses)
			courseIndex[row.CourseCode] = ci
			courses = append(courses, models.Course{
				Code:       row.CourseCode,
				Name:       row.CourseName,
				Department: row.Department,
				Credits:    row.Credits,
			})
		}
		course := &courses[ci]

		sectionKey := row.CourseCode + "/" + row.SectionID
		si, ok := sectionIndex[sectionKey]
		if !ok {
			si = len(course.Sections)
			sectionIndex[sectionKey] = si
			section := models.Section{
				ID:            row.SectionID,
				Kind:          models.SectionKind(strings.ToUpper(row.Kind)),
				ParentLecture: row.ParentLecture,
				Quota:         row.Quota,
				Enrolled:      row.Enrolled,
			}
			if row.SeatsLeft != "" {
				if left, err := strconv.Atoi(row.SeatsLeft); err == nil {
					section.SeatsLeft = &left
				}
			}
			course.Sections = append(course.Sections, section)
		}

		course.Sections[si].Slots = append(course.Sections[si].Slots, models.TimeSlot{
			Day:   models.Weekday(row.Day),
			Start: timetable.ParseClock(row.Start),
			End:   timetable.ParseClock(row.End),
			Room:  row.Room,
		})
	}

	return courses, nil
}
