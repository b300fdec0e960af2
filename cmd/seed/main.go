package main

import (
	"log"

	"github.com/creoleap/api/config"
	"github.com/creoleap/api/database"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.RunSeeds(store.GetDB()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed.")
	log.Println("Super admin is created from SUPERADMIN_EMAIL, SUPERADMIN_PASSWORD and SUPERADMIN_MOBILE.")
}
