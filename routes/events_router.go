package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/events"
)

// SetupEventsRoutes builds the events service engine: the event and
// template API under /api plus the health and banner endpoints.
func SetupEventsRoutes(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	eventController := events.NewEventController(events.NewEventRepository(db))
	r.GET("/", eventController.Index)
	r.GET("/health", eventController.Health)

	events.RegisterEventRoutes(r.Group("/api"), db)

	return r
}
