package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"exam-prep-portal/services"
)

// GetCourses returns the course catalog
func GetCourses(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetAllCourses())
}

// GetCourse returns one course by ID
func GetCourse(c *gin.Context) {
	id := c.Param("id")

	course, err := services.GetCourseByID(id)
	if err != nil {
		log.Debug().Str("course", id).Msg("course lookup failed")
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetBTechResources returns the semester-wise resource list. An optional
// ?semester= query narrows it down.
func GetBTechResources(c *gin.Context) {
	semester := 0
	if raw := c.Query("semester"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester"})
			return
		}
		semester = parsed
	}

	c.JSON(http.StatusOK, services.GetBTechResources(semester))
}
