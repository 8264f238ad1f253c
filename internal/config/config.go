package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Time    string   `mapstructure:"time"` // "20:00"
	Days    []string `mapstructure:"days"` // ["Mon","Tue",...]
}

type LogConfig struct {
	Level string `mapstructure:"level"` // trace|debug|info|warn|error
	File  string `mapstructure:"file"`  // default <data_dir>/soldier.log
	JSON  bool   `mapstructure:"json"`
}

type Config struct {
	Theme    string         `mapstructure:"theme"`
	Timezone string         `mapstructure:"timezone"` // e.g. "Asia/Jakarta" (optional)
	DataDir  string         `mapstructure:"data_dir"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Log      LogConfig      `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Theme:    "default",
		Timezone: "",
		DataDir:  defaultDataDir(),
		Reminder: ReminderConfig{
			Enabled: true,
			Time:    "20:00",
			Days:    []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "soldier")
	}
	return filepath.Join(home, ".local", "share", "soldier")
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "soldier")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads ~/.config/soldier/config.yaml. A missing file yields defaults.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the YAML config at path, layered over defaults and
// SOLDIER_* environment variables.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("SOLDIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.days", cfg.Reminder.Days)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.json", cfg.Log.JSON)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize days
	var days []string
	for _, d := range cfg.Reminder.Days {
		if abbr := normalizeDay(d); abbr != "" {
			days = append(days, abbr)
		}
	}
	cfg.Reminder.Days = days
	return cfg, nil
}

func normalizeDay(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) < 3 {
		return ""
	}
	return strings.ToUpper(d[:1]) + d[1:3]
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "soldier.db")
}

func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "soldier.log")
}
