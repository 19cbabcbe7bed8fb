package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/studentadmin/internal/app/auth"
	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
	"github.com/campushq/studentadmin/internal/pkg/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStudentRepo struct {
	byUID map[string]*models.Student
}

func (r *stubStudentRepo) GetByFirebaseUID(_ context.Context, firebaseUID string) (*models.Student, error) {
	student, ok := r.byUID[firebaseUID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *stubStudentRepo) Create(context.Context, *models.Student) (int64, error) {
	panic("not used")
}
func (r *stubStudentRepo) GetAll(context.Context) ([]*models.Student, error) { panic("not used") }
func (r *stubStudentRepo) GetByID(context.Context, int64) (*models.Student, error) {
	panic("not used")
}
func (r *stubStudentRepo) GetByCourseID(context.Context, int64) ([]*models.Student, error) {
	panic("not used")
}
func (r *stubStudentRepo) Update(context.Context, *models.Student) error { panic("not used") }
func (r *stubStudentRepo) Delete(context.Context, int64) error           { panic("not used") }
func (r *stubStudentRepo) ExistsByEmail(context.Context, string) (bool, error) {
	panic("not used")
}

func newTestMiddleware(t *testing.T) *AuthMiddleware {
	t.Helper()

	// A provider pointed at a dead endpoint: header parsing paths never
	// reach it, and any presented token fails verification.
	jwksServer := httptest.NewServer(http.NotFoundHandler())
	jwksServer.Close()
	provider := identity.NewProvider(identity.Config{
		Issuer:  "https://id.example.com",
		JWKSURL: jwksServer.URL + "/jwks.json",
	}, nil)

	authz := auth.NewAuthorizationService(&stubStudentRepo{byUID: map[string]*models.Student{
		"uid-admin":   {ID: 1, Role: models.RoleAdmin, FirebaseUID: "uid-admin"},
		"uid-student": {ID: 2, Role: models.RoleStudent, FirebaseUID: "uid-student"},
	}})

	return NewAuthMiddleware(provider, authz)
}

func performRequest(router *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuthMissingHeader(t *testing.T) {
	m := newTestMiddleware(t)
	router := gin.New()
	router.GET("/protected", m.BearerAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := performRequest(router, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthEmptyToken(t *testing.T) {
	m := newTestMiddleware(t)
	router := gin.New()
	router.GET("/protected", m.BearerAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := performRequest(router, map[string]string{"Authorization": "Bearer "})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthUnverifiableToken(t *testing.T) {
	m := newTestMiddleware(t)
	router := gin.New()
	router.GET("/protected", m.BearerAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := performRequest(router, map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_001")
}

// AdminRequired depends on BearerAuth having stored a subject; without one
// the request counts as unauthenticated rather than forbidden.
func TestAdminRequiredWithoutSubject(t *testing.T) {
	m := newTestMiddleware(t)
	router := gin.New()
	router.GET("/protected", m.AdminRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := performRequest(router, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name       string
		subjectID  string
		wantStatus int
	}{
		{"admin passes", "uid-admin", http.StatusOK},
		{"student forbidden", "uid-student", http.StatusForbidden},
		{"unlinked subject unauthenticated", "uid-nobody", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMiddleware(t)
			router := gin.New()
			router.GET("/protected",
				func(c *gin.Context) { c.Set(SubjectKey, tt.subjectID) },
				m.AdminRequired(),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			rec := performRequest(router, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSubjectFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := SubjectFromContext(c)
	assert.False(t, ok)

	c.Set(SubjectKey, "uid-admin")
	subjectID, ok := SubjectFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "uid-admin", subjectID)
}
