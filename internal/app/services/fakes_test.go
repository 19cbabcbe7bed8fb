package services

import (
	"context"
	"sort"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// fakeCourseRepo is an in-memory ICourseRepository. It mirrors the storage
// semantics of the real one: no uniqueness constraint on codes, not-found
// reported via apperrors sentinels.
type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *course
	stored.ID = id
	r.courses[id] = &stored
	return id, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, course := range r.courses {
		if course.Code == code {
			copied := *course
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	all := make([]*models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		copied := *course
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, course := range r.courses {
		if course.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// fakeStudentRepo is an in-memory IStudentRepository. Reads resolve the
// course relation through the linked fakeCourseRepo the way the SQL left
// join does: a dangling course_id leaves Course nil.
type fakeStudentRepo struct {
	students map[int64]*models.Student
	courses  *fakeCourseRepo
	nextID   int64
}

func newFakeStudentRepo(courses *fakeCourseRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, courses: courses, nextID: 1}
}

func (r *fakeStudentRepo) resolve(student *models.Student) *models.Student {
	copied := *student
	copied.Course = nil
	if copied.CourseID != nil {
		if course, ok := r.courses.courses[*copied.CourseID]; ok {
			c := *course
			copied.Course = &c
		}
	}
	return &copied
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *student
	stored.ID = id
	r.students[id] = &stored
	return id, nil
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	all := make([]*models.Student, 0, len(r.students))
	for _, student := range r.students {
		all = append(all, r.resolve(student))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.resolve(student), nil
}

func (r *fakeStudentRepo) GetByFirebaseUID(_ context.Context, firebaseUID string) (*models.Student, error) {
	for _, student := range r.students {
		if student.FirebaseUID == firebaseUID {
			return r.resolve(student), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetByCourseID(_ context.Context, courseID int64) ([]*models.Student, error) {
	matched := []*models.Student{}
	for _, student := range r.students {
		if student.CourseID != nil && *student.CourseID == courseID {
			matched = append(matched, r.resolve(student))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	existing, ok := r.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	existing.Name = student.Name
	existing.Email = student.Email
	existing.Phone = student.Phone
	existing.CourseID = student.CourseID
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, student := range r.students {
		if student.Email == email {
			return true, nil
		}
	}
	return false, nil
}
