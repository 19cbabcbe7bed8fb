package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/studentadmin/internal/app/models"
	"github.com/campushq/studentadmin/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCourseService returns canned results per method.
type stubCourseService struct {
	course  *models.Course
	courses []*models.Course
	err     error
}

func (s *stubCourseService) CreateCourse(_ context.Context, course *models.Course) (*models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	course.ID = 1
	return course, nil
}

func (s *stubCourseService) GetCourseByID(context.Context, int64) (*models.Course, error) {
	return s.course, s.err
}

func (s *stubCourseService) GetCourseByCode(context.Context, string) (*models.Course, error) {
	return s.course, s.err
}

func (s *stubCourseService) GetAllCourses(context.Context) ([]*models.Course, error) {
	return s.courses, s.err
}

func (s *stubCourseService) UpdateCourse(context.Context, int64, string, string, string) (*models.Course, error) {
	return s.course, s.err
}

func (s *stubCourseService) DeleteCourse(context.Context, int64) error {
	return s.err
}

func courseRouter(svc *stubCourseService) *gin.Engine {
	controller := NewCourseController(svc)
	router := gin.New()
	router.POST("/courses", controller.CreateCourse)
	router.GET("/courses", controller.GetAllCourses)
	router.GET("/courses/:id", controller.GetCourseByID)
	router.PUT("/courses/:id", controller.UpdateCourse)
	router.DELETE("/courses/:id", controller.DeleteCourse)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCourseReturnsCreated(t *testing.T) {
	router := courseRouter(&stubCourseService{})

	rec := doJSON(router, http.MethodPost, "/courses", map[string]string{
		"courseCode":     "CS101",
		"courseName":     "Intro to CS",
		"courseDuration": "1 semester",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"courseCode":"CS101"`)
}

func TestCreateCourseMissingFields(t *testing.T) {
	router := courseRouter(&stubCourseService{})

	rec := doJSON(router, http.MethodPost, "/courses", map[string]string{
		"courseCode": "CS101",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	router := courseRouter(&stubCourseService{
		err: apperrors.NewCustomError(apperrors.ErrCourseCodeExists, "course code already exists: CS101"),
	})

	rec := doJSON(router, http.MethodPost, "/courses", map[string]string{
		"courseCode":     "CS101",
		"courseName":     "Intro to CS",
		"courseDuration": "1 semester",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "RES_002")
}

func TestGetCourseByIDNotFound(t *testing.T) {
	router := courseRouter(&stubCourseService{
		err: apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found with ID: 42"),
	})

	rec := doJSON(router, http.MethodGet, "/courses/42", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RES_001")
}

func TestGetCourseByIDMalformedParam(t *testing.T) {
	router := courseRouter(&stubCourseService{})

	rec := doJSON(router, http.MethodGet, "/courses/abc", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestGetAllCourses(t *testing.T) {
	router := courseRouter(&stubCourseService{courses: []*models.Course{
		{ID: 1, Code: "CS101", Name: "Intro", Duration: "1 semester"},
		{ID: 2, Code: "CS200", Name: "Systems", Duration: "1 semester"},
	}})

	rec := doJSON(router, http.MethodGet, "/courses", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CS101")
	assert.Contains(t, rec.Body.String(), "CS200")
}

func TestDeleteCourse(t *testing.T) {
	router := courseRouter(&stubCourseService{})

	rec := doJSON(router, http.MethodDelete, "/courses/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course deleted successfully")
}
