package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"salesboard/api"
	"salesboard/app"
	"salesboard/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var db *sqlx.DB
	if cfg.Database.URL != "" {
		db, err = sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
	}

	loader, _, err := app.NewLoaderFromConfig(context.Background(), cfg, db)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}

	log.Fatal(api.NewApp(loader).Start(":" + cfg.Server.APIPort))
}
