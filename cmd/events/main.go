package main

import (
	"log"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/events"
	"github.com/wpras/golfku/routes"
)

func main() {
	if err := config.InitializeEvents(); err != nil {
		log.Fatalf("Failed to initialize events service: %v", err)
	}

	cfg := config.GetConfig()

	err := config.EventsDB.AutoMigrate(
		&events.Event{}, &events.EventRegistration{}, &events.EventTemplate{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := events.NewEventRepository(config.EventsDB).SeedTemplates(); err != nil {
		log.Fatalf("Failed to seed event templates: %v", err)
	}

	r := routes.SetupEventsRoutes(config.EventsDB)

	log.Printf("Starting events service on port %s in %s mode\n", cfg.Events.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.Events.Port); err != nil {
		log.Fatalf("Failed to run events service: %v", err)
	}
}
