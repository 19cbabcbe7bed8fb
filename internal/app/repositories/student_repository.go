package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
	"github.com/campushq/studentadmin/internal/pkg/logger"
)

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// studentColumns are the student+course columns selected by every read.
// Students are always read together with their (possibly absent) course;
// the join deliberately tolerates dangling course references, in which
// case the course side comes back NULL.
var studentColumns = []string{
	"s.id", "s.student_name", "s.email", "s.phone", "s.firebase_uid", "s.role", "s.course_id",
	"c.id", "c.course_code", "c.course_name", "c.course_duration",
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		LeftJoin("courses c ON c.id = s.course_id")
}

// scanStudent scans one joined student row, populating the Course relation
// when the joined course exists.
func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	var phone *string
	var courseID *int64
	var courseCode, courseName, courseDuration *string

	err := row.Scan(
		&student.ID, &student.Name, &student.Email, &phone, &student.FirebaseUID, &student.Role, &student.CourseID,
		&courseID, &courseCode, &courseName, &courseDuration,
	)
	if err != nil {
		return nil, err
	}

	if phone != nil {
		student.Phone = *phone
	}
	if courseID != nil {
		student.Course = &models.Course{
			ID:       *courseID,
			Code:     *courseCode,
			Name:     *courseName,
			Duration: *courseDuration,
		}
	}

	return student, nil
}

// Create inserts a new student and returns its assigned ID. Email
// uniqueness is checked by the service layer, not by a storage constraint.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("student_name", "email", "phone", "firebase_uid", "role", "course_id").
		Values(student.Name, student.Email, student.Phone, student.FirebaseUID, student.Role, student.CourseID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetAll retrieves all students with their course populated when assigned
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.selectStudents().OrderBy("s.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetByFirebaseUID retrieves the student linked to an identity provider
// subject id
func (r *StudentRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(squirrel.Eq{"s.firebase_uid": firebaseUID}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by uid query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("firebaseUID", firebaseUID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by firebase uid: %w", err)
	}

	return student, nil
}

// GetByCourseID retrieves all students assigned to a course. The course is
// not validated to exist; an unknown id yields an empty slice.
func (r *StudentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.course_id": courseID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students by course query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// Update overwrites name, email, phone and the course assignment of an
// existing student. A nil CourseID clears the assignment.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"student_name": student.Name,
			"email":        student.Email,
			"phone":        student.Phone,
			"course_id":    student.CourseID,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// ExistsByEmail checks whether any student carries the given email
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("email", email).Msg("Error checking student existence")
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args []interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
