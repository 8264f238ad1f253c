// Package store defines the persisted key-value schema shared by every screen.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Persisted keys.
const (
	KeyCurrentDay     = "currentDay"
	KeyLastCommitDate = "lastCommitDate"
	KeyTotalSessions  = "totalSessions"
	KeySoundEnabled   = "soundEnabled"
	KeyNotifications  = "notifications"
	// KeyBestStreak is reserved: only ResetProgress touches it.
	KeyBestStreak = "bestStreak"
	// KeyLegacySessions is the old name of KeyTotalSessions.
	KeyLegacySessions = "focus_sessions"
)

// ProgressKeys are removed together by ResetProgress.
var ProgressKeys = []string{KeyCurrentDay, KeyLastCommitDate, KeyTotalSessions, KeyBestStreak}

// DateLayout renders calendar dates the same way the mobile app stored them.
const DateLayout = "Mon Jan 02 2006"

var ErrInvalidValue = errors.New("invalid stored value")

// KV is the abstract string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// SessionRecord is one finished breathing session.
type SessionRecord struct {
	ID             string    `json:"id" yaml:"id"`
	StartedAt      time.Time `json:"started_at" yaml:"started_at"`
	EndedAt        time.Time `json:"ended_at" yaml:"ended_at"`
	ElapsedSeconds int       `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	PhaseChanges   int       `json:"phase_changes" yaml:"phase_changes"`
}

// History keeps the timestamped breathing session log.
type History interface {
	RecordSession(ctx context.Context, rec SessionRecord) error
	SessionsSince(ctx context.Context, since time.Time) ([]SessionRecord, error)
	ClearSessions(ctx context.Context) error
}

// Field is a typed view of one key with its default and codec.
type Field[T any] struct {
	Key     string
	Default T
	decode  func(string) (T, error)
	encode  func(T) string
}

var (
	CurrentDay     = Field[int]{Key: KeyCurrentDay, Default: 1, decode: decodeMin(1), encode: strconv.Itoa}
	TotalSessions  = Field[int]{Key: KeyTotalSessions, Default: 0, decode: decodeMin(0), encode: strconv.Itoa}
	LastCommitDate = Field[string]{Key: KeyLastCommitDate, Default: "", decode: decodeDate, encode: identity}
	SoundEnabled   = Field[bool]{Key: KeySoundEnabled, Default: true, decode: decodeBool, encode: encodeBool}
	Notifications  = Field[bool]{Key: KeyNotifications, Default: true, decode: decodeBool, encode: encodeBool}
)

// Load returns the stored value, or the default when the key is absent.
// An undecodable value yields the default together with ErrInvalidValue.
func (f Field[T]) Load(ctx context.Context, kv KV) (T, error) {
	raw, ok, err := kv.Get(ctx, f.Key)
	if err != nil {
		return f.Default, fmt.Errorf("get %s: %w", f.Key, err)
	}
	if !ok {
		return f.Default, nil
	}
	v, err := f.decode(raw)
	if err != nil {
		return f.Default, fmt.Errorf("%s=%q: %w", f.Key, raw, errors.Join(ErrInvalidValue, err))
	}
	return v, nil
}

func (f Field[T]) Save(ctx context.Context, kv KV, v T) error {
	if err := kv.Set(ctx, f.Key, f.encode(v)); err != nil {
		return fmt.Errorf("set %s: %w", f.Key, err)
	}
	return nil
}

func decodeMin(lo int) func(string) (int, error) {
	return func(s string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, err
		}
		if n < lo {
			return 0, fmt.Errorf("%d is below %d", n, lo)
		}
		return n, nil
	}
}

func decodeDate(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("empty date")
	}
	return s, nil
}

func decodeBool(s string) (bool, error) {
	var b bool
	if err := json.Unmarshal([]byte(s), &b); err != nil {
		return false, err
	}
	return b, nil
}

func encodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func identity(s string) string { return s }

// FormatDate renders t as a calendar-date key value.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// MigrateLegacy copies focus_sessions into totalSessions when only the old key
// exists, then deletes the old key. It reports whether a value was copied.
func MigrateLegacy(ctx context.Context, kv KV) (bool, error) {
	legacy, ok, err := kv.Get(ctx, KeyLegacySessions)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", KeyLegacySessions, err)
	}
	if !ok {
		return false, nil
	}
	_, hasNew, err := kv.Get(ctx, KeyTotalSessions)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", KeyTotalSessions, err)
	}
	copied := false
	if !hasNew {
		n, err := TotalSessions.decode(legacy)
		if err != nil {
			return false, fmt.Errorf("%s=%q: %w", KeyLegacySessions, legacy, errors.Join(ErrInvalidValue, err))
		}
		if err := TotalSessions.Save(ctx, kv, n); err != nil {
			return false, err
		}
		copied = true
	}
	if err := kv.Remove(ctx, KeyLegacySessions); err != nil {
		return copied, fmt.Errorf("remove %s: %w", KeyLegacySessions, err)
	}
	return copied, nil
}

// ResetProgress removes the streak and session keys in one batch.
func ResetProgress(ctx context.Context, kv KV) error {
	if err := kv.Remove(ctx, ProgressKeys...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
