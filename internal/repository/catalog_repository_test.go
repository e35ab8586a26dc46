package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

const jsonCatalog = `[
  {
    "code": "CSCI1120",
    "name": "Introduction to Computing Using C++",
    "department": "CSE",
    "credits": 3,
    "sections": [
      {
        "id": "A",
        "kind": "LEC",
        "slots": [{"day": 1, "start": 930, "end": 975, "room": "LSB LT1"}],
        "quota": 100,
        "enrolled": 40
      }
    ]
  },
  {
    "code": "MATH1510",
    "name": "Calculus for Engineers",
    "department": "MATH",
    "credits": 3,
    "sections": []
  }
]`

const csvCatalog = `course_code,course_name,department,credits,section_id,kind,parent_lecture,day,start,end,room,quota,enrolled,seats_left
CSCI1120,Introduction to Computing Using C++,CSE,3,A,LEC,,1,15:30,16:15,LSB LT1,100,40,
CSCI1120,Introduction to Computing Using C++,CSE,3,A,LEC,,3,11:30,13:15,LSB LT1,100,40,
CSCI1120,Introduction to Computing Using C++,CSE,3,AT01,TUT,A,2,13:30,14:15,ERB 404,30,25,5
MATH1510,Calculus for Engineers,MATH,3,L1,LEC,,4,09:30,11:15,LSB LT2,200,200,0
`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalogJSON(t *testing.T) {
	path := writeCatalog(t, "catalog.json", jsonCatalog)

	repo, err := LoadCatalog(path, "", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.Count())
	course, ok := repo.FindByCode("CSCI1120")
	require.True(t, ok)
	require.Len(t, course.Sections, 1)
	assert.Equal(t, models.KindLecture, course.Sections[0].Kind)
	assert.Equal(t, 930, course.Sections[0].Slots[0].Start)
	assert.Equal(t, []string{"CSE", "MATH"}, repo.Departments())
}

func TestLoadCatalogCSVFoldsRowsIntoSections(t *testing.T) {
	path := writeCatalog(t, "catalog.csv", csvCatalog)

	repo, err := LoadCatalog(path, "csv", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	course, ok := repo.FindByCode("CSCI1120")
	require.True(t, ok)
	require.Len(t, course.Sections, 2)

	lec := course.Sections[0]
	assert.Equal(t, "A", lec.ID)
	require.Len(t, lec.Slots, 2, "two rows for the same section fold into one section with two slots")
	assert.Equal(t, models.Monday, lec.Slots[0].Day)
	assert.Equal(t, 15*60+30, lec.Slots[0].Start)
	assert.Equal(t, 16*60+15, lec.Slots[0].End)
	assert.Nil(t, lec.SeatsLeft)

	tut := course.Sections[1]
	assert.Equal(t, models.KindTutorial, tut.Kind)
	assert.Equal(t, "A", tut.ParentLecture)
	require.NotNil(t, tut.SeatsLeft)
	assert.Equal(t, 5, *tut.SeatsLeft)

	math, ok := repo.FindByCode("MATH1510")
	require.True(t, ok)
	require.NotNil(t, math.Sections[0].SeatsLeft)
	assert.Equal(t, 0, *math.Sections[0].SeatsLeft)
}

func TestLoadCatalogUnsupportedFormat(t *testing.T) {
	path := writeCatalog(t, "catalog.yaml", "courses: []")

	_, err := LoadCatalog(path, "", zap.NewNop())
	require.Error(t, err)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"), "json", zap.NewNop())
	require.Error(t, err)
}

func TestCatalogResolvePreservesOrderAndReportsMissing(t *testing.T) {
	repo := NewCatalogRepository([]models.Course{
		{Code: "AAAA1000"},
		{Code: "BBBB2000"},
	})

	resolved, missing := repo.Resolve([]string{"BBBB2000", "XXXX9999", "AAAA1000"})

	require.Len(t, resolved, 2)
	assert.Equal(t, "BBBB2000", resolved[0].Code)
	assert.Equal(t, "AAAA1000", resolved[1].Code)
	assert.Equal(t, []string{"XXXX9999"}, missing)
}
