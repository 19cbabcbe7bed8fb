package dto

// StudentInput carries the student fields accepted from the caller.
type StudentInput struct {
	StudentName string `json:"studentName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	FirebaseUID string `json:"firebaseUid"`
	Role        string `json:"role"`
}

// CreateStudentRequest represents the student creation payload. CourseID is
// optional; when present the referenced course must exist.
type CreateStudentRequest struct {
	Student  StudentInput `json:"student" binding:"required"`
	CourseID *int64       `json:"courseId" binding:"omitempty,gt=0"`
}

// UpdateStudentInput carries the student fields overwritten on update.
type UpdateStudentInput struct {
	StudentName string `json:"studentName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
}

// UpdateStudentRequest represents the student update payload. Omitting
// courseId always detaches any assigned course; it never means "leave
// unchanged".
type UpdateStudentRequest struct {
	Student  UpdateStudentInput `json:"student" binding:"required"`
	CourseID *int64             `json:"courseId" binding:"omitempty,gt=0"`
}

// CourseDetails is the nested course projection used by the denormalized
// student listing.
type CourseDetails struct {
	CourseID       int64  `json:"courseId"`
	CourseName     string `json:"courseName"`
	CourseCode     string `json:"courseCode"`
	CourseDuration string `json:"courseDuration"`
}

// StudentWithCourseResponse is the denormalized student+course view. Course
// is an explicit JSON null when the student has no assignment.
type StudentWithCourseResponse struct {
	StudentID   int64          `json:"studentId"`
	StudentName string         `json:"studentName"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Role        string         `json:"role"`
	Course      *CourseDetails `json:"course"`
}
