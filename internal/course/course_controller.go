package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CourseController serves the course catalog.
type CourseController struct {
	catalog *Catalog
}

// NewCourseController creates a new course controller.
func NewCourseController(catalog *Catalog) *CourseController {
	return &CourseController{catalog: catalog}
}

// GetCourses godoc
// @Summary List golf courses
// @Description Get all golf courses grouped by region
// @Tags courses
// @Produce json
// @Success 200 {object} map[string][]Course "Courses by region"
// @Router /courses [get]
func (cc *CourseController) GetCourses(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, cc.catalog.Regions())
}

// GetCourse godoc
// @Summary Get a golf course
// @Description Get a single golf course by its catalog id
// @Tags courses
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} Course "Course details"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{course_id} [get]
func (cc *CourseController) GetCourse(ctx *gin.Context) {
	co, ok := cc.catalog.ByID(ctx.Param("course_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	ctx.JSON(http.StatusOK, co)
}
