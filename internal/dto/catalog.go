package dto

// CourseQuery filters the catalog listing.
type CourseQuery struct {
	Department string `form:"department"`
	Search     string `form:"q"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// CourseSummary is the catalog listing shape.
type CourseSummary struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Credits      float64 `json:"credits"`
	SectionCount int     `json:"sectionCount"`
}
