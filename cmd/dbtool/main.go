package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"route-finder-service/internal/adapters/cache"
	"route-finder-service/internal/config"
	"route-finder-service/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool prepares the geocode cache schema ahead of the first server start.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	backend := flag.String("backend", config.Get("GEOCODE_CACHE", "postgres"), "cache backend: postgres, sqlite or none")
	flag.Parse()

	if err := run(context.Background(), strings.ToLower(strings.TrimSpace(*backend))); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, backend string) error {
	if backend == "none" {
		log.Println("Geocode cache disabled (GEOCODE_CACHE=none), nothing to initialize.")
		return nil
	}

	conn, err := open(backend)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Println("Initializing geocode cache schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

func open(backend string) (*sql.DB, error) {
	switch backend {
	case "sqlite":
		return db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, errors.New("DATABASE_URL is required")
		}
		return db.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unknown backend %q (want postgres, sqlite or none)", backend)
	}
}
