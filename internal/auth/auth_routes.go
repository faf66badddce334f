package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/middleware"
	"github.com/wpras/golfku/pkg/mailer"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig, mailer.New(appConfig))

	// Public routes, rate limited per client address
	authPublic := router.Group("/auth")
	authPublic.Use(middleware.RateLimit(appConfig.App.AuthRateLimit))
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/verify-register", authController.VerifyRegister)

		authPublic.POST("/login", authController.Login)
		authPublic.POST("/verify-login", authController.VerifyLogin)

		authPublic.POST("/forgot-password", authController.ForgotPassword)
		authPublic.POST("/verify-reset", authController.VerifyReset)
		authPublic.POST("/reset-password", authController.ResetPassword)
	}

	// Authenticated routes
	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.PUT("/me", authController.UpdateProfile)
	}
}
