package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/dto"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/response"
)

// CourseCatalog serves catalog browsing queries.
type CourseCatalog interface {
	List(query dto.CourseQuery) ([]dto.CourseSummary, *models.Pagination)
	Get(code string) (*models.Course, error)
	Departments() []string
}

// CourseHandler exposes the catalog endpoints.
type CourseHandler struct {
	catalog CourseCatalog
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(catalog CourseCatalog) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// List handles GET /courses.
//
// @Summary List catalog courses
// @Tags courses
// @Produce json
// @Param department query string false "Filter by department"
// @Param q query string false "Search in course code and name"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]dto.CourseSummary}
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	var query dto.CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed query parameters"))
		return
	}

	courses, pagination := h.catalog.List(query)
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get handles GET /courses/:code.
//
// @Summary Get one course with all its sections
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope{data=models.Course}
// @Failure 404 {object} response.Envelope
// @Router /courses/{code} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.catalog.Get(c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Departments handles GET /courses/departments.
//
// @Summary List catalog departments
// @Tags courses
// @Produce json
// @Success 200 {object} response.Envelope{data=[]string}
// @Router /courses/departments [get]
func (h *CourseHandler) Departments(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Departments(), nil)
}
