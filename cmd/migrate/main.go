package main

import (
	"log"

	"question-bank-be/internal/config"
	"question-bank-be/internal/model"
	"question-bank-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Starting GORM Migration (%s)...", cfg.Database.Driver)

	models := []interface{}{
		&model.GenerationAudit{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
