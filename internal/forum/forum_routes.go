package forum

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/middleware"
)

// RegisterForumRoutes sets up the forum endpoints. Every route requires
// an authenticated user.
func RegisterForumRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	forumRepo := NewForumRepository(db)
	forumController := NewForumController(forumRepo)

	forumGroup := router.Group("/forum")
	forumGroup.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		forumGroup.GET("/posts", forumController.GetPosts)
		forumGroup.POST("/posts", forumController.CreatePost)
		forumGroup.GET("/posts/:post_id", forumController.GetPost)
		forumGroup.PUT("/posts/:post_id", forumController.UpdatePost)
		forumGroup.DELETE("/posts/:post_id", forumController.DeletePost)

		forumGroup.GET("/posts/:post_id/comments", forumController.GetComments)
		forumGroup.POST("/posts/:post_id/comments", forumController.AddComment)
		forumGroup.DELETE("/posts/:post_id/comments/:comment_id", forumController.DeleteComment)

		forumGroup.POST("/posts/:post_id/like", forumController.ToggleLike)
	}
}
