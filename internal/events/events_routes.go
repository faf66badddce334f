package events

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterEventRoutes sets up the event, registration and template
// endpoints under the given group.
func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB) {
	eventRepo := NewEventRepository(db)
	eventController := NewEventController(eventRepo)

	templateGroup := router.Group("/templates")
	{
		templateGroup.GET("", eventController.GetTemplates)
		templateGroup.GET("/:template_id", eventController.GetTemplate)
	}

	eventGroup := router.Group("/events")
	{
		eventGroup.GET("", eventController.GetEvents)
		eventGroup.POST("", eventController.CreateEvent)
		eventGroup.GET("/:event_id", eventController.GetEvent)
		eventGroup.PUT("/:event_id", eventController.UpdateEvent)
		eventGroup.DELETE("/:event_id", eventController.DeleteEvent)

		eventGroup.POST("/:event_id/register", eventController.Register)
		eventGroup.GET("/:event_id/registrations", eventController.GetRegistrations)
	}

	router.DELETE("/registrations/:registration_id", eventController.CancelRegistration)
}
