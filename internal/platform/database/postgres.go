package database

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"ambassador_portal/internal/platform/config"
	"ambassador_portal/internal/platform/database/migrations"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pressly/goose/v3"
)

var (
	DB   *sql.DB
	once sync.Once
)

// Connect opens the process-wide connection pool. Safe to call from any
// goroutine; the pool is initialized exactly once and reused for the lifetime
// of the process.
func Connect() {
	once.Do(func() {
		var err error
		DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
		if err != nil {
			log.Fatalf("Error opening database: %v", err)
		}

		DB.SetMaxOpenConns(25)
		DB.SetMaxIdleConns(25)
		DB.SetConnMaxLifetime(5 * time.Minute)

		if err = DB.Ping(); err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}

		if err = migrate(DB); err != nil {
			log.Fatalf("Error running migrations: %v", err)
		}
	})
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(context.Background(), db, ".")
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
