// Command migrate applies the embedded SQL migrations to the
// configured PostgreSQL database. Usage: migrate [up|down].
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/eduboost/course-portal-api/migrations"
	"github.com/eduboost/course-portal-api/pkg/config"
)

func main() {
	flag.Parse()
	direction := flag.Arg(0)
	if direction == "" {
		direction = "up"
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("direction must be up or down, got %q", direction)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Fatalf("migrations require STORAGE_DRIVER=postgres, got %q", cfg.Storage.Driver)
	}

	if err := run(dsn(cfg.Database), direction); err != nil {
		log.Fatalf("migration %s failed: %v", direction, err)
	}
	log.Printf("migration %s complete", direction)
}

func dsn(db config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(db.User),
		url.QueryEscape(db.Password),
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}

func run(dsn, direction string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
