package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/app/models/dto"
	"github.com/campushq/studentadmin/internal/app/services"
	"github.com/campushq/studentadmin/internal/middleware"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// StudentController handles student-related endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// AddStudent registers a new student, optionally enrolled in a course (admin only)
// POST /students
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	student := &models.Student{
		Name:        req.Student.StudentName,
		Email:       req.Student.Email,
		Phone:       req.Student.Phone,
		FirebaseUID: req.Student.FirebaseUID,
		Role:        req.Student.Role,
	}

	created, err := c.studentService.AddStudent(ctx.Request.Context(), student, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// GetAllStudents lists all students (admin only)
// GET /students
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetStudentsWithCourses lists all students in the denormalized
// student+course projection (admin only). Unassigned students report an
// explicit null course.
// GET /students/with-courses
func (c *StudentController) GetStudentsWithCourses(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudentsWithCourseDetails(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetStudentByID retrieves a student by ID (admin only)
// GET /students/:id
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// GetOwnProfile returns the student record linked to the caller's identity
// GET /students/me
func (c *StudentController) GetOwnProfile(ctx *gin.Context) {
	subjectID, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.studentService.GetStudentByFirebaseUID(ctx.Request.Context(), subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// GetStudentsByCourse lists students enrolled in a given course (admin only)
// GET /students/course/:courseId
func (c *StudentController) GetStudentsByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByCourseID(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// UpdateStudent overwrites a student's fields and enrollment (admin only)
// PUT /students/:id
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	updated, err := c.studentService.UpdateStudent(ctx.Request.Context(), id,
		req.Student.StudentName, req.Student.Email, req.Student.Phone, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteStudent removes a student (admin only)
// DELETE /students/:id
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully"))
}
