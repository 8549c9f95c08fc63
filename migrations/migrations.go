// Package migrations embeds the goose SQL migrations for the schema.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

func setup() error {
	goose.SetBaseFS(files)
	return goose.SetDialect("postgres")
}

// Up applies every pending migration.
func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Down(db, ".")
}

// Status prints the applied state of every migration through goose's logger.
func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.Status(db, ".")
}
