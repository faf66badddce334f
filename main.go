package main

import (
	"log"

	"github.com/wpras/golfku/config"
	_ "github.com/wpras/golfku/docs"
	"github.com/wpras/golfku/internal/auth"
	"github.com/wpras/golfku/internal/course"
	"github.com/wpras/golfku/internal/forum"
	"github.com/wpras/golfku/internal/game"
	"github.com/wpras/golfku/internal/player"
	"github.com/wpras/golfku/internal/user"
	"github.com/wpras/golfku/routes"
)

// @title Golfku REST API
// @version 1.0
// @description Scorecard, handicap and community server for Indonesian golf courses.
// @host localhost:8080
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	catalog, err := course.LoadCatalog(cfg.App.CourseDataFile)
	if err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}
	log.Printf("Loaded %d golf courses", catalog.Len())

	err = config.DB.AutoMigrate(
		&user.User{}, &auth.OTP{},
		&course.CourseRecord{}, &player.Player{},
		&game.Game{}, &game.GameResult{}, &game.ScoreHistory{},
		&forum.ForumPost{}, &forum.ForumComment{}, &forum.ForumLike{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, catalog, cfg)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
