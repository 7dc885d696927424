package config

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	intdb "storefront/internal/db"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var (
	DB       *sql.DB
	dbDriver string
	dbMu     sync.Mutex
)

// ConnectDB initializes the shared DB connection and applies migrations (idempotent).
func ConnectDB(env Env) *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}

	db, err := OpenDB(env.DBDriver, env.DBDSN)
	if err != nil {
		log.Fatalf("Gagal open DB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := intdb.RunMigrations(ctx, db, env.DBDriver); err != nil {
		log.Fatalf("Gagal migrasi DB: %v", err)
	}

	DB = db
	dbDriver = env.DBDriver
	log.Printf("Berhasil konek ke database driver=%s", env.DBDriver)
	return DB
}

// OpenDB opens and pings a pool for the given driver.
func OpenDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// single writer; sqlite serializes anyway
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(10 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureDB(ctx context.Context) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		return sql.ErrConnDone
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

// UseDB installs an already opened pool as the shared connection.
func UseDB(db *sql.DB, driver string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	DB = db
	dbDriver = driver
}

// Current returns the shared pool and its driver name.
func Current() (*sql.DB, string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	return DB, dbDriver
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
		dbDriver = ""
	}
}
