// Package db holds the embedded schema and small helpers shared by repositories.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// GooseDialect maps a database/sql driver name to the goose dialect.
func GooseDialect(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite3", nil
	}
	return "", fmt.Errorf("driver %q tidak didukung", driver)
}

// RunMigrations applies the embedded migrations for the given driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, err := GooseDialect(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "migrations")
}
