package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFieldDefaultsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(nil)

	day, err := CurrentDay.Load(ctx, kv)
	if err != nil || day != 1 {
		t.Fatalf("currentDay default: got %d, %v", day, err)
	}
	total, err := TotalSessions.Load(ctx, kv)
	if err != nil || total != 0 {
		t.Fatalf("totalSessions default: got %d, %v", total, err)
	}
	date, err := LastCommitDate.Load(ctx, kv)
	if err != nil || date != "" {
		t.Fatalf("lastCommitDate default: got %q, %v", date, err)
	}
	sound, err := SoundEnabled.Load(ctx, kv)
	if err != nil || !sound {
		t.Fatalf("soundEnabled default: got %v, %v", sound, err)
	}
	notif, err := Notifications.Load(ctx, kv)
	if err != nil || !notif {
		t.Fatalf("notifications default: got %v, %v", notif, err)
	}
}

func TestFieldRejectsInvalidValues(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{"day not a number", KeyCurrentDay, "abc"},
		{"day zero", KeyCurrentDay, "0"},
		{"negative sessions", KeyTotalSessions, "-3"},
		{"bool not json", KeySoundEnabled, "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemory(map[string]string{tt.key: tt.raw})
			var err error
			switch tt.key {
			case KeyCurrentDay:
				var v int
				v, err = CurrentDay.Load(ctx, kv)
				if v != 1 {
					t.Errorf("expected default 1, got %d", v)
				}
			case KeyTotalSessions:
				var v int
				v, err = TotalSessions.Load(ctx, kv)
				if v != 0 {
					t.Errorf("expected default 0, got %d", v)
				}
			case KeySoundEnabled:
				var v bool
				v, err = SoundEnabled.Load(ctx, kv)
				if !v {
					t.Errorf("expected default true")
				}
			}
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestFieldEncoding(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(nil)
	if err := CurrentDay.Save(ctx, kv, 12); err != nil {
		t.Fatal(err)
	}
	if err := SoundEnabled.Save(ctx, kv, false); err != nil {
		t.Fatal(err)
	}
	snap := kv.Snapshot()
	if snap[KeyCurrentDay] != "12" {
		t.Errorf("currentDay encoded as %q", snap[KeyCurrentDay])
	}
	if snap[KeySoundEnabled] != "false" {
		t.Errorf("soundEnabled encoded as %q", snap[KeySoundEnabled])
	}
	sound, err := SoundEnabled.Load(ctx, kv)
	if err != nil || sound {
		t.Fatalf("expected false, got %v (%v)", sound, err)
	}
}

func TestMigrateLegacyCopiesAndDeletes(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(map[string]string{KeyLegacySessions: "7"})

	copied, err := MigrateLegacy(ctx, kv)
	if err != nil || !copied {
		t.Fatalf("expected migration, got copied=%v err=%v", copied, err)
	}
	snap := kv.Snapshot()
	if snap[KeyTotalSessions] != "7" {
		t.Fatalf("totalSessions = %q, want 7", snap[KeyTotalSessions])
	}
	if _, ok := snap[KeyLegacySessions]; ok {
		t.Fatalf("legacy key should be removed")
	}

	copied, err = MigrateLegacy(ctx, kv)
	if err != nil || copied {
		t.Fatalf("second run should be a no-op, got copied=%v err=%v", copied, err)
	}
}

func TestMigrateLegacyKeepsNewKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(map[string]string{KeyLegacySessions: "7", KeyTotalSessions: "11"})

	copied, err := MigrateLegacy(ctx, kv)
	if err != nil || copied {
		t.Fatalf("expected no copy, got copied=%v err=%v", copied, err)
	}
	snap := kv.Snapshot()
	if snap[KeyTotalSessions] != "11" {
		t.Fatalf("totalSessions overwritten: %q", snap[KeyTotalSessions])
	}
	if _, ok := snap[KeyLegacySessions]; ok {
		t.Fatalf("legacy key should be removed")
	}
}

func TestResetProgressIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(map[string]string{
		KeyCurrentDay:     "9",
		KeyLastCommitDate: "Sat Oct 17 2026",
		KeyTotalSessions:  "4",
		KeyBestStreak:     "9",
		KeySoundEnabled:   "false",
	})
	if err := ResetProgress(ctx, kv); err != nil {
		t.Fatal(err)
	}
	once := kv.Snapshot()
	if err := ResetProgress(ctx, kv); err != nil {
		t.Fatal(err)
	}
	twice := kv.Snapshot()

	if len(once) != 1 || once[KeySoundEnabled] != "false" {
		t.Fatalf("unexpected state after reset: %v", once)
	}
	if len(twice) != len(once) || twice[KeySoundEnabled] != once[KeySoundEnabled] {
		t.Fatalf("second reset changed state: %v vs %v", twice, once)
	}
	day, _ := CurrentDay.Load(ctx, kv)
	total, _ := TotalSessions.Load(ctx, kv)
	if day != 1 || total != 0 {
		t.Fatalf("expected day=1 sessions=0, got %d/%d", day, total)
	}
}

func TestMemoryHistorySince(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	base := time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC)
	for i := 3; i >= 0; i-- {
		at := base.AddDate(0, 0, i)
		_ = m.RecordSession(ctx, SessionRecord{ID: at.String(), StartedAt: at, EndedAt: at})
	}
	got, err := m.SessionsSince(ctx, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0].EndedAt.Before(got[1].EndedAt) {
		t.Fatalf("unexpected sessions: %+v", got)
	}
	if err := m.ClearSessions(ctx); err != nil {
		t.Fatal(err)
	}
	got, _ = m.SessionsSince(ctx, time.Time{})
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
}
