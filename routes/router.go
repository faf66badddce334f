package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/auth"
	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/eventclient"
	"github.com/wpras/golfku/internal/forum"
	"github.com/wpras/golfku/internal/game"
	"github.com/wpras/golfku/internal/player"
)

// SetupRoutes builds the main API engine: course catalog, games and
// scoring, players, auth, forum, and the proxied events service.
func SetupRoutes(db *gorm.DB, catalog *course.Catalog, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	// Authorization is not in the default allow list, and the browser
	// client sends it on every authenticated call.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Golfku API",
			"version": "1.0.0",
			"docs":    "/swagger/index.html",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	course.RegisterCourseRoutes(api, catalog)
	game.RegisterGameRoutes(api, db, catalog, appConfig)
	player.RegisterPlayerRoutes(api, db)
	auth.RegisterAuthRoutes(api, db, appConfig)
	forum.RegisterForumRoutes(api, db, appConfig)
	eventclient.RegisterEventProxyRoutes(api, appConfig)

	return r
}
