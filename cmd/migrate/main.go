package main

import (
	"context"
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/internal/infrastructure/database"
	"github.com/johnquangdev/transcript-iq/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	limit := flag.Int("limit", 0, "maximum number of migrations to apply (0 = all)")
	flag.Parse()

	var dir migrate.MigrationDirection
	switch *direction {
	case "up":
		dir = migrate.Up
	case "down":
		dir = migrate.Down
	default:
		log.Fatalf("Unknown direction %q, expected up or down", *direction)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database using GORM
	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	log.Printf("🔄 Applying embedded migrations (%s)...", *direction)
	n, err := database.Migrate(db, dir, *limit, logger)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!", n)
}
