package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	CourseCode     string `json:"courseCode" binding:"required"`
	CourseName     string `json:"courseName" binding:"required"`
	CourseDuration string `json:"courseDuration" binding:"required"`
}

// UpdateCourseRequest represents course update data. All three fields are
// overwritten on update.
type UpdateCourseRequest struct {
	CourseCode     string `json:"courseCode" binding:"required"`
	CourseName     string `json:"courseName" binding:"required"`
	CourseDuration string `json:"courseDuration" binding:"required"`
}
