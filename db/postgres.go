package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// Connect opens the Postgres database at connStr.
func Connect(connStr string) error {
	if connStr == "" {
		return errors.New("DATABASE_URL is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// ConnectSQLite opens a single-writer SQLite database at path.
func ConnectSQLite(path string) error {
	if path == "" {
		return errors.New("SQLITE_PATH is not set")
	}

	var err error
	DB, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	DB.SetMaxOpenConns(1)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
