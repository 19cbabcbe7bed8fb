package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/studentadmin/internal/app/controllers"
	"github.com/campushq/studentadmin/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Every route requires a verified bearer token.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.BearerAuth())

	// Course routes
	courses := authenticated.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.AdminRequired())
		{
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:id", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
		}
	}

	// Student routes
	students := authenticated.Group("/students")
	{
		// Any authenticated caller may look up their own record.
		students.GET("/me", studentController.GetOwnProfile)

		studentsAdmin := students.Group("")
		studentsAdmin.Use(authMiddleware.AdminRequired())
		{
			studentsAdmin.GET("", studentController.GetAllStudents)
			studentsAdmin.GET("/with-courses", studentController.GetStudentsWithCourses)
			studentsAdmin.GET("/:id", studentController.GetStudentByID)
			studentsAdmin.GET("/course/:courseId", studentController.GetStudentsByCourse)
			studentsAdmin.POST("", studentController.AddStudent)
			studentsAdmin.PUT("/:id", studentController.UpdateStudent)
			studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
		}
	}
}
