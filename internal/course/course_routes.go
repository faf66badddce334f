package course

import (
	"github.com/gin-gonic/gin"
)

// RegisterCourseRoutes wires up the course catalog endpoints.
func RegisterCourseRoutes(router *gin.RouterGroup, catalog *Catalog) {
	courseController := NewCourseController(catalog)

	courseGroup := router.Group("/courses")
	{
		courseGroup.GET("", courseController.GetCourses)
		courseGroup.GET("/:course_id", courseController.GetCourse)
	}
}
