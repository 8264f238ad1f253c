package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	def := Default()
	if cfg.Theme != def.Theme || cfg.Reminder.Time != def.Reminder.Time || cfg.Log.Level != "info" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Reminder.Days, def.Reminder.Days) {
		t.Fatalf("days: got %v, want %v", cfg.Reminder.Days, def.Reminder.Days)
	}
}

func TestLoadFromFileOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `theme: dark
timezone: Asia/Jakarta
data_dir: ` + dir + `
reminder:
  enabled: false
  time: "07:30"
  days: ["monday", " tue", "x", "SATURDAY"]
log:
  level: debug
  json: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Theme != "dark" || cfg.Reminder.Enabled || cfg.Reminder.Time != "07:30" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if want := []string{"Mon", "Tue", "Sat"}; !reflect.DeepEqual(cfg.Reminder.Days, want) {
		t.Fatalf("days: got %v, want %v", cfg.Reminder.Days, want)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Fatalf("log config: %+v", cfg.Log)
	}
	if cfg.DBPath() != filepath.Join(dir, "soldier.db") {
		t.Fatalf("DBPath: %s", cfg.DBPath())
	}
	if cfg.LogPath() != filepath.Join(dir, "soldier.log") {
		t.Fatalf("LogPath: %s", cfg.LogPath())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SOLDIER_REMINDER_TIME", "06:15")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reminder.Time != "06:15" {
		t.Fatalf("env override ignored: %q", cfg.Reminder.Time)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	if cfg.Location() != time.Local {
		t.Fatalf("empty timezone should map to time.Local")
	}
	cfg.Timezone = "Not/AZone"
	if cfg.Location() != time.Local {
		t.Fatalf("invalid timezone should fall back to time.Local")
	}
	cfg.Timezone = "UTC"
	if cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %s", cfg.Location())
	}
}
