package models

// Course represents a course offered to students, based on the 'courses' table.
type Course struct {
	ID       int64  `json:"courseId" db:"id" example:"1"`
	Code     string `json:"courseCode" db:"course_code" example:"CS101"`
	Name     string `json:"courseName" db:"course_name" example:"Intro CS"`
	Duration string `json:"courseDuration" db:"course_duration" example:"1 semester"`
}
