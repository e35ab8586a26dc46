package service

import (
	"strings"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/dto"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// CatalogReader abstracts read access to the loaded course catalog.
type CatalogReader interface {
	All() []models.Course
	FindByCode(code string) (*models.Course, bool)
	Departments() []string
	Resolve(codes []string) ([]*models.Course, []string)
}

// CatalogService serves catalog browsing queries.
type CatalogService struct {
	catalog CatalogReader
}

// NewCatalogService constructs a catalog service.
func NewCatalogService(catalog CatalogReader) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// List returns catalog summaries filtered by department and free-text search,
// paginated in load order.
func (s *CatalogService) List(query dto.CourseQuery) ([]dto.CourseSummary, *models.Pagination) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	needle := strings.ToLower(strings.TrimSpace(query.Search))

	var matched []dto.CourseSummary
	for _, course := range s.catalog.All() {
		if query.Department != "" && !strings.EqualFold(course.Department, query.Department) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(course.Code), needle) &&
			!strings.Contains(strings.ToLower(course.Name), needle) {
			continue
		}
		matched = append(matched, dto.CourseSummary{
			Code:         course.Code,
			Name:         course.Name,
			Department:   course.Department,
			Credits:      course.Credits,
			SectionCount: len(course.Sections),
		})
	}

	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(matched)}

	offset := (page - 1) * pageSize
	if offset >= len(matched) {
		return []dto.CourseSummary{}, pagination
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], pagination
}

// Get returns the full course record for one code.
func (s *CatalogService) Get(code string) (*models.Course, error) {
	course, ok := s.catalog.FindByCode(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course "+code+" not found")
	}
	return course, nil
}

// Departments lists the distinct department labels in the catalog.
func (s *CatalogService) Departments() []string {
	return s.catalog.Departments()
}
