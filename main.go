package main

import (
	"context"
	"embed"
	"io/fs"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"salesboard/app"
	"salesboard/internal/config"
	"salesboard/internal/errors"
	"salesboard/ui"
)

//go:embed ui/templates ui/static
var embeddedFiles embed.FS

// initDatabase opens the optional snapshot-audit database.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if db != nil {
		defer db.Close()
		log.Println("Snapshot audit database connected")
	}

	loader, snapshots, err := app.NewLoaderFromConfig(context.Background(), cfg, db)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}

	templatesFS, err := fs.Sub(embeddedFiles, "ui/templates")
	if err != nil {
		log.Fatalf("Failed to mount templates: %v", err)
	}
	staticFS, err := fs.Sub(embeddedFiles, "ui/static")
	if err != nil {
		log.Fatalf("Failed to mount static assets: %v", err)
	}

	server, err := ui.NewServer(ui.Config{
		GinMode:   cfg.Server.GinMode,
		Loader:    loader,
		Snapshots: snapshots,
		Templates: templatesFS,
		Static:    staticFS,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting salesboard dashboard on port %s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
