package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ramanasai/soldier/internal/store"
)

// tsLayout has a fixed width so stored timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Sessions is a store.History backed by the sessions table.
type Sessions struct {
	dbh *sql.DB
}

func NewSessions(dbh *sql.DB) *Sessions { return &Sessions{dbh: dbh} }

func (s *Sessions) RecordSession(ctx context.Context, rec store.SessionRecord) error {
	_, err := s.dbh.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, ended_at, elapsed_seconds, phase_changes)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.StartedAt.UTC().Format(tsLayout), rec.EndedAt.UTC().Format(tsLayout),
		rec.ElapsedSeconds, rec.PhaseChanges)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// SessionsSince returns sessions that ended at or after since, oldest first.
func (s *Sessions) SessionsSince(ctx context.Context, since time.Time) ([]store.SessionRecord, error) {
	rows, err := s.dbh.QueryContext(ctx, `
		SELECT id, started_at, ended_at, elapsed_seconds, phase_changes
		FROM sessions
		WHERE ended_at >= ?
		ORDER BY ended_at ASC
	`, since.UTC().Format(tsLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []store.SessionRecord
	for rows.Next() {
		var rec store.SessionRecord
		var started, ended string
		if err := rows.Scan(&rec.ID, &started, &ended, &rec.ElapsedSeconds, &rec.PhaseChanges); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = parseTS(started); err != nil {
			return nil, fmt.Errorf("bad started_at for %s: %w", rec.ID, err)
		}
		if rec.EndedAt, err = parseTS(ended); err != nil {
			return nil, fmt.Errorf("bad ended_at for %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Sessions) ClearSessions(ctx context.Context) error {
	_, err := s.dbh.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

func parseTS(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		// fallback for RFC3339 without nanos
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
