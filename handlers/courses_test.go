package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"exam-prep-portal/models"
)

func newCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.GET("/courses", GetCourses)
	api.GET("/courses/:id", GetCourse)
	api.GET("/btech-resources", GetBTechResources)
	return router
}

func TestGetCourses(t *testing.T) {
	router := newCatalogRouter()

	courses := getJSON[[]models.Course](t, router, "/api/courses")
	require.Len(t, courses, 3)

	tracks := map[string]bool{}
	for _, c := range courses {
		tracks[c.Track] = true
	}
	require.True(t, tracks["neet"])
	require.True(t, tracks["jee"])
	require.True(t, tracks["btech"])
}

func TestGetCourseNotFound(t *testing.T) {
	router := newCatalogRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/courses/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBTechResourcesBySemester(t *testing.T) {
	router := newCatalogRouter()

	resources := getJSON[[]models.Resource](t, router, "/api/btech-resources?semester=1")
	require.NotEmpty(t, resources)
	for _, r := range resources {
		require.Equal(t, 1, r.Semester)
	}
}

func TestGetBTechResourcesRejectsBadSemester(t *testing.T) {
	router := newCatalogRouter()

	for _, q := range []string{"abc", "0", "-2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/btech-resources?semester="+q, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body gin.H
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body, "error")
	}
}
