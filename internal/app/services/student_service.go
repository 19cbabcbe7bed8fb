package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/app/models/dto"
	"github.com/campushq/studentadmin/internal/app/repositories"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	AddStudent(ctx context.Context, student *models.Student, courseID *int64) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	GetAllStudentsWithCourseDetails(ctx context.Context) ([]*dto.StudentWithCourseResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error)
	GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, name, email, phone string, newCourseID *int64) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// studentService implements the StudentService interface
type studentService struct {
	studentRepo   repositories.IStudentRepository
	courseService CourseService
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, courseService CourseService) StudentService {
	return &studentService{
		studentRepo:   studentRepo,
		courseService: courseService,
	}
}

// AddStudent creates a new student, optionally assigning a course. The
// course must exist at assignment time; its not-found error propagates
// unchanged. Role defaults to STUDENT when unset, but any non-empty string
// is stored as-is.
func (s *studentService) AddStudent(ctx context.Context, student *models.Student, courseID *int64) (*models.Student, error) {
	exists, err := s.studentRepo.ExistsByEmail(ctx, student.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking student email: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailExists,
			fmt.Sprintf("student with email already exists: %s", student.Email))
	}

	if courseID != nil {
		course, err := s.courseService.GetCourseByID(ctx, *courseID)
		if err != nil {
			return nil, err
		}
		student.CourseID = &course.ID
		student.Course = course
	}

	if student.Role == "" {
		student.Role = models.RoleStudent
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	student.ID = id

	return student, nil
}

// GetAllStudents retrieves all students
func (s *studentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	return students, nil
}

// GetAllStudentsWithCourseDetails returns the denormalized student+course
// projection. Students without a course report an explicit null course.
func (s *studentService) GetAllStudentsWithCourseDetails(ctx context.Context) ([]*dto.StudentWithCourseResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	result := make([]*dto.StudentWithCourseResponse, 0, len(students))
	for _, student := range students {
		entry := &dto.StudentWithCourseResponse{
			StudentID:   student.ID,
			StudentName: student.Name,
			Email:       student.Email,
			Phone:       student.Phone,
			Role:        student.Role,
		}
		if student.Course != nil {
			entry.Course = &dto.CourseDetails{
				CourseID:       student.Course.ID,
				CourseName:     student.Course.Name,
				CourseCode:     student.Course.Code,
				CourseDuration: student.Course.Duration,
			}
		}
		result = append(result, entry)
	}

	return result, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
				fmt.Sprintf("student not found with ID: %d", id))
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetStudentByFirebaseUID retrieves the student linked to an identity
// provider subject id
func (s *studentService) GetStudentByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
				fmt.Sprintf("student not found with firebase UID: %s", firebaseUID))
		}
		return nil, fmt.Errorf("error retrieving student by uid: %w", err)
	}

	return student, nil
}

// GetStudentsByCourseID retrieves all students assigned to a course. The
// course itself is not validated; an unknown id yields an empty result.
func (s *studentService) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	students, err := s.studentRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students by course: %w", err)
	}

	return students, nil
}

// UpdateStudent overwrites name, email and phone unconditionally. Email
// uniqueness is only enforced at creation time, so an update can introduce
// a duplicate; this mirrors the creation-time-only check. A nil newCourseID
// always detaches any assigned course; a non-nil id must resolve to an
// existing course.
func (s *studentService) UpdateStudent(ctx context.Context, id int64, name, email, phone string, newCourseID *int64) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = name
	student.Email = email
	student.Phone = phone

	if newCourseID != nil {
		course, err := s.courseService.GetCourseByID(ctx, *newCourseID)
		if err != nil {
			return nil, err
		}
		student.CourseID = &course.ID
		student.Course = course
	} else {
		student.CourseID = nil
		student.Course = nil
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
				fmt.Sprintf("student not found with ID: %d", id))
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// DeleteStudent removes a student by ID
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.NewCustomError(apperrors.ErrStudentNotFound,
				fmt.Sprintf("student not found with ID: %d", id))
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
