package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/portfolio-rebalancer/backend/internal/config"
	"github.com/portfolio-rebalancer/backend/internal/storage"
)

func main() {
	var (
		direction = flag.String("direction", "up", "migration direction: up, down or version")
		path      = flag.String("path", "migrations", "path to the migration files")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	databaseURL := cfg.Database.URL()

	switch *direction {
	case "up":
		if err := storage.RunMigrations(databaseURL, *path); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		log.Info().Msg("Migrations applied")
	case "down":
		if err := storage.RollbackMigrations(databaseURL, *path); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
		log.Info().Msg("Last migration rolled back")
	case "version":
		version, dirty, err := storage.MigrationVersion(databaseURL, *path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read migration version")
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "unknown direction: %s\n", *direction)
		os.Exit(1)
	}
}
