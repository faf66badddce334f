package game

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/pkg/mailer"
)

// RegisterGameRoutes sets up the scoring and game endpoints.
func RegisterGameRoutes(router *gin.RouterGroup, db *gorm.DB, catalog *course.Catalog, appConfig *config.Config) {
	gameRepo := NewGameRepository(db)
	gameController := NewGameController(gameRepo, catalog, appConfig, mailer.New(appConfig))

	router.POST("/calculate", gameController.Calculate)

	gameGroup := router.Group("/games")
	{
		gameGroup.POST("", gameController.CreateGame)
		gameGroup.GET("/history", gameController.GetHistory)
		gameGroup.POST("/scorecard/pdf", gameController.DownloadScorecard)
		gameGroup.POST("/scorecard/email", gameController.EmailScorecard)
	}
}
