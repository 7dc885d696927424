package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// Tables are the tables the storefront migrations create.
var Tables = []string{"users", "products", "purchases"}

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the connected schema.
func HasTable(ctx context.Context, q QueryRower, driverName, table string) bool {
	stmt := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`
	if driverName == "sqlite" {
		stmt = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1`
	}

	var name sql.NullString
	if err := q.QueryRowContext(ctx, stmt, table).Scan(&name); err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			log.Printf("[DB] action=has_table table=%s msg=driver.ErrBadConn", table)
		}
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables lists the storefront tables that are not present.
func MissingTables(ctx context.Context, q QueryRower, driverName string) []string {
	missing := []string{}
	for _, t := range Tables {
		if !HasTable(ctx, q, driverName, t) {
			missing = append(missing, t)
		}
	}
	return missing
}
