package eventclient

import (
	"github.com/gin-gonic/gin"

	"github.com/wpras/golfku/config"
)

// RegisterEventProxyRoutes mounts the event and template endpoints on
// the main API. The paths mirror the events service exactly, so each
// request forwards to the same path on the other side.
func RegisterEventProxyRoutes(router *gin.RouterGroup, appConfig *config.Config) {
	pc := NewProxyController(New(appConfig))

	templateGroup := router.Group("/templates")
	{
		templateGroup.GET("", pc.Proxy)
		templateGroup.GET("/:template_id", pc.Proxy)
	}

	eventGroup := router.Group("/events")
	{
		eventGroup.GET("", pc.Proxy)
		eventGroup.POST("", pc.Proxy)
		eventGroup.GET("/:event_id", pc.Proxy)
		eventGroup.PUT("/:event_id", pc.Proxy)
		eventGroup.DELETE("/:event_id", pc.Proxy)
		eventGroup.POST("/:event_id/register", pc.Proxy)
		eventGroup.GET("/:event_id/registrations", pc.Proxy)
	}

	router.DELETE("/registrations/:registration_id", pc.Proxy)
}
