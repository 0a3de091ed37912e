package database

import (
	"database/sql"

	"job-tracker-backend/pkg/logger"

	_ "modernc.org/sqlite"
)

// NewSQLiteConnection opens a SQLite database for local development.
// Use ":memory:" for a throwaway database.
func NewSQLiteConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive across queries
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log.Info("Database connection established", "driver", "sqlite", "path", path)
	return db, nil
}
