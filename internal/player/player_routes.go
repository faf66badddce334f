package player

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPlayerRoutes wires up the player endpoints.
func RegisterPlayerRoutes(router *gin.RouterGroup, db *gorm.DB) {
	playerController := NewPlayerController(NewPlayerRepository(db))

	playerGroup := router.Group("/players")
	{
		playerGroup.GET("", playerController.GetPlayers)
		playerGroup.POST("", playerController.CreatePlayer)
	}
}
