package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

// fakeStudentRepo implements the subset of IStudentRepository the
// authorization service touches; everything else panics.
type fakeStudentRepo struct {
	byUID map[string]*models.Student
}

func (r *fakeStudentRepo) GetByFirebaseUID(_ context.Context, firebaseUID string) (*models.Student, error) {
	student, ok := r.byUID[firebaseUID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) Create(context.Context, *models.Student) (int64, error) {
	panic("not used")
}
func (r *fakeStudentRepo) GetAll(context.Context) ([]*models.Student, error) { panic("not used") }
func (r *fakeStudentRepo) GetByID(context.Context, int64) (*models.Student, error) {
	panic("not used")
}
func (r *fakeStudentRepo) GetByCourseID(context.Context, int64) ([]*models.Student, error) {
	panic("not used")
}
func (r *fakeStudentRepo) Update(context.Context, *models.Student) error  { panic("not used") }
func (r *fakeStudentRepo) Delete(context.Context, int64) error            { panic("not used") }
func (r *fakeStudentRepo) ExistsByEmail(context.Context, string) (bool, error) {
	panic("not used")
}

func newAuthzUnderTest() *AuthorizationService {
	return NewAuthorizationService(&fakeStudentRepo{byUID: map[string]*models.Student{
		"uid-admin":   {ID: 1, Name: "Root", Role: models.RoleAdmin, FirebaseUID: "uid-admin"},
		"uid-student": {ID: 2, Name: "Alice", Role: models.RoleStudent, FirebaseUID: "uid-student"},
		"uid-auditor": {ID: 3, Name: "Eve", Role: "admin", FirebaseUID: "uid-auditor"},
	}})
}

func TestIsAdmin(t *testing.T) {
	svc := newAuthzUnderTest()

	isAdmin, err := svc.IsAdmin(context.Background(), "uid-admin")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(context.Background(), "uid-student")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

// The role comparison is exact and case sensitive; "admin" grants nothing.
func TestIsAdminCaseSensitive(t *testing.T) {
	svc := newAuthzUnderTest()

	isAdmin, err := svc.IsAdmin(context.Background(), "uid-auditor")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

// A verified subject with no linked student is an error, not a plain false.
func TestIsAdminUnknownSubject(t *testing.T) {
	svc := newAuthzUnderTest()

	_, err := svc.IsAdmin(context.Background(), "uid-nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRequireAdmin(t *testing.T) {
	svc := newAuthzUnderTest()

	assert.NoError(t, svc.RequireAdmin(context.Background(), "uid-admin"))
	assert.ErrorIs(t, svc.RequireAdmin(context.Background(), "uid-student"), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.RequireAdmin(context.Background(), "uid-nobody"), apperrors.ErrUserNotFound)
}
