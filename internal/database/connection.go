package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. PostgreSQL is used
// when DATABASE_URL is set, otherwise a local SQLite file.
func Connect() error {
	var db *sqlx.DB
	var err error

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "constantlearning.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		_, err = db.Exec("PRAGMA foreign_keys = ON")
		if err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return InitSchema(db)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// InitSchema creates the tables if they don't exist
func InitSchema(db *sqlx.DB) error {
	autoinc := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		autoinc = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS chat_registrations (
			id %s,
			chat_id BIGINT UNIQUE NOT NULL,
			chat_title TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			repetition_time TEXT NOT NULL DEFAULT '09:00',
			new_words_time TEXT NOT NULL DEFAULT '20:00',
			new_words_count INTEGER NOT NULL DEFAULT 0,
			repetition_words_count INTEGER NOT NULL DEFAULT 0,
			registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`, autoinc))
	if err != nil {
		return fmt.Errorf("failed to create chat_registrations table: %v", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			target_word TEXT NOT NULL,
			source_meaning TEXT NOT NULL,
			phonetic TEXT NOT NULL DEFAULT '',
			frequency_rank INTEGER NOT NULL,
			imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`, autoinc))
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_words_frequency_rank ON words (frequency_rank)")
	if err != nil {
		return fmt.Errorf("failed to create words index: %v", err)
	}

	_, err = db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS learned_words (
			id %s,
			chat_id BIGINT NOT NULL,
			word_id INTEGER NOT NULL,
			learned_at TIMESTAMP NOT NULL,
			last_repeated_at TIMESTAMP NOT NULL,
			repetition_count INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (word_id) REFERENCES words(id),
			UNIQUE (chat_id, word_id)
		)
	`, autoinc))
	if err != nil {
		return fmt.Errorf("failed to create learned_words table: %v", err)
	}

	return nil
}
