package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramanasai/soldier/internal/store"
)

func openTemp(t *testing.T) (*KV, *Sessions) {
	t.Helper()
	dbh, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return NewKV(dbh), NewSessions(dbh)
}

func TestKVSetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	kv, _ := openTemp(t)

	if _, ok, err := kv.Get(ctx, store.KeyCurrentDay); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, store.KeyCurrentDay, "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, store.KeyCurrentDay, "4"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, store.KeyCurrentDay)
	if err != nil || !ok || v != "4" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestKVRemoveBatch(t *testing.T) {
	ctx := context.Background()
	kv, _ := openTemp(t)
	for _, k := range []string{store.KeyCurrentDay, store.KeyTotalSessions, store.KeySoundEnabled} {
		if err := kv.Set(ctx, k, "1"); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.ResetProgress(ctx, kv); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := store.ResetProgress(ctx, kv); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	for _, k := range store.ProgressKeys {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Errorf("%s should be removed", k)
		}
	}
	if _, ok, _ := kv.Get(ctx, store.KeySoundEnabled); !ok {
		t.Errorf("soundEnabled should survive a progress reset")
	}
}

func TestLegacyMigrationAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	kv, _ := openTemp(t)
	if err := kv.Set(ctx, store.KeyLegacySessions, "7"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.MigrateLegacy(ctx, kv); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	v, ok, _ := kv.Get(ctx, store.KeyTotalSessions)
	if !ok || v != "7" {
		t.Fatalf("totalSessions = %q (ok=%v), want 7", v, ok)
	}
	if _, ok, _ := kv.Get(ctx, store.KeyLegacySessions); ok {
		t.Fatalf("legacy key should be deleted")
	}
}

func TestSessionsRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	_, sessions := openTemp(t)
	base := time.Date(2026, 10, 12, 7, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		start := base.AddDate(0, 0, i)
		rec := store.SessionRecord{
			ID:             start.Format("20060102"),
			StartedAt:      start,
			EndedAt:        start.Add(90*time.Second + 500*time.Millisecond),
			ElapsedSeconds: 90,
			PhaseChanges:   22,
		}
		if err := sessions.RecordSession(ctx, rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := sessions.SessionsSince(ctx, base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != "20261013" || got[1].ID != "20261014" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].ElapsedSeconds != 90 || got[0].PhaseChanges != 22 {
		t.Fatalf("fields not round-tripped: %+v", got[0])
	}
	if !got[0].EndedAt.Equal(base.AddDate(0, 0, 1).Add(90*time.Second + 500*time.Millisecond)) {
		t.Fatalf("ended_at mismatch: %v", got[0].EndedAt)
	}

	if err := sessions.ClearSessions(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = sessions.SessionsSince(ctx, time.Time{})
	if len(got) != 0 {
		t.Fatalf("expected no sessions after clear, got %d", len(got))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	for i := 0; i < 2; i++ {
		dbh, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		if err := EnsureSessionColumns(dbh); err != nil {
			t.Fatalf("ensure columns #%d: %v", i+1, err)
		}
		_ = dbh.Close()
	}
}
