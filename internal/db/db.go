package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// FileName is the database file inside the data directory.
const FileName = "soldier.db"

// Open opens (creating if needed) the sqlite database at path and applies the schema.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer keeps last-write-wins ordering simple across screens.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := EnsureSessionColumns(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

// ------------------------------
// Sessions (idempotent upgrader)
// ------------------------------

// EnsureSessionColumns adds columns introduced after the first release of the
// sessions table.
func EnsureSessionColumns(db *sql.DB) error {
	needPhases := true

	rows, err := db.Query(`PRAGMA table_info(sessions)`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if strings.ToLower(name) == "phase_changes" {
			needPhases = false
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_ = rows.Close()
	if !needPhases {
		return nil
	}

	if _, err := db.Exec(`ALTER TABLE sessions ADD COLUMN phase_changes INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("add phase_changes: %w", err)
	}
	return nil
}
