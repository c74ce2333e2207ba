package main

import (
	"log"
	"os"

	"supplier-onboarding-be/internal/model"
	"supplier-onboarding-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for submissions...")
	if err := db.AutoMigrate(&model.Submission{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// GORM tags cannot declare jsonb GIN indexes.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_submissions_form_data ON submissions USING GIN (form_data);`,
	}
	for _, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}

	log.Println("✅ Migration completed")
}
