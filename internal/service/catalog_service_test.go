package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/dto"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
)

func catalogFixture() *catalogStub {
	return &catalogStub{courses: []models.Course{
		{Code: "CSCI1120", Name: "Introduction to Computing Using C++", Department: "CSE", Credits: 3},
		{Code: "CSCI2100", Name: "Data Structures", Department: "CSE", Credits: 3},
		{Code: "MATH1510", Name: "Calculus for Engineers", Department: "MATH", Credits: 3},
	}}
}

func TestCatalogServiceListFiltersByDepartment(t *testing.T) {
	svc := NewCatalogService(catalogFixture())

	courses, pagination := svc.List(dto.CourseQuery{Department: "cse"})

	require.Len(t, courses, 2)
	assert.Equal(t, "CSCI1120", courses[0].Code)
	assert.Equal(t, 2, pagination.TotalCount)
}

func TestCatalogServiceListSearchMatchesCodeAndName(t *testing.T) {
	svc := NewCatalogService(catalogFixture())

	byCode, _ := svc.List(dto.CourseQuery{Search: "math15"})
	require.Len(t, byCode, 1)
	assert.Equal(t, "MATH1510", byCode[0].Code)

	byName, _ := svc.List(dto.CourseQuery{Search: "calculus"})
	require.Len(t, byName, 1)
	assert.Equal(t, "MATH1510", byName[0].Code)
}

func TestCatalogServiceListPaginates(t *testing.T) {
	svc := NewCatalogService(catalogFixture())

	page1, pagination := svc.List(dto.CourseQuery{Page: 1, PageSize: 2})
	require.Len(t, page1, 2)
	assert.Equal(t, 3, pagination.TotalCount)

	page2, _ := svc.List(dto.CourseQuery{Page: 2, PageSize: 2})
	require.Len(t, page2, 1)
	assert.Equal(t, "MATH1510", page2[0].Code)

	empty, _ := svc.List(dto.CourseQuery{Page: 5, PageSize: 2})
	assert.Empty(t, empty)
}

func TestCatalogServiceGetNotFound(t *testing.T) {
	svc := NewCatalogService(catalogFixture())

	_, err := svc.Get("NOPE9999")

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCatalogServiceGet(t *testing.T) {
	svc := NewCatalogService(catalogFixture())

	course, err := svc.Get("CSCI2100")

	require.NoError(t, err)
	assert.Equal(t, "Data Structures", course.Name)
}
