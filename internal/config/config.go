package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sadopc/focus/internal/timer"
	"gopkg.in/yaml.v3"
)

const (
	appName        = "focus"
	configFileName = "config.yaml"
	dbFileName     = "focus.db"
	logFileName    = "focus.log"

	// HomeEnv relocates every file focus reads or writes.
	HomeEnv = "FOCUS_HOME"
)

// ErrInvalid is returned for out-of-range values and unknown setting keys.
var ErrInvalid = errors.New("config: invalid value")

// Setting keys persisted in the settings table.
const (
	KeyWorkDuration            = "work_duration"
	KeyBreakDuration           = "break_duration"
	KeyLongBreakDuration       = "long_break_duration"
	KeySessionsBeforeLongBreak = "sessions_before_long_break"
	KeyDailyGoalMinutes        = "daily_goal_minutes"
	KeyAlarmSound              = "alarm_sound"
)

// SettingKeys lists every user-editable setting in display order.
var SettingKeys = []string{
	KeyWorkDuration,
	KeyBreakDuration,
	KeyLongBreakDuration,
	KeySessionsBeforeLongBreak,
	KeyDailyGoalMinutes,
	KeyAlarmSound,
}

// AlarmSounds are the accepted alarm_sound values.
var AlarmSounds = []string{"chime", "bell", "digital", "gentle", "none"}

type Config struct {
	WorkMinutes             int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
	DailyGoalMinutes        int
	AlarmSound              string
	DBPath                  string
	LogPath                 string
}

type yamlConfig struct {
	WorkMinutes             int    `yaml:"work_minutes"`
	ShortBreakMinutes       int    `yaml:"short_break_minutes"`
	LongBreakMinutes        int    `yaml:"long_break_minutes"`
	SessionsBeforeLongBreak int    `yaml:"sessions_before_long_break"`
	DailyGoalMinutes        int    `yaml:"daily_goal_minutes"`
	AlarmSound              string `yaml:"alarm_sound"`
	DBPath                  string `yaml:"db_path"`
	LogPath                 string `yaml:"log_path"`
}

// Default returns the built-in configuration rooted at the data directory.
func Default() Config {
	cfg := Config{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		DailyGoalMinutes:        120,
		AlarmSound:              "chime",
	}
	if dir, err := DataDir(); err == nil {
		cfg.DBPath = filepath.Join(dir, dbFileName)
		cfg.LogPath = filepath.Join(dir, logFileName)
	}
	return cfg
}

// DataDir returns $FOCUS_HOME, or <UserConfigDir>/focus.
func DataDir() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		return home, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, appName), nil
}

// DefaultPath returns the location of config.yaml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the YAML file at path on top of Default.
// If the file does not exist, defaults are returned. Out-of-range values
// are ignored field by field.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYaml(&cfg, fileData)
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlConfig{
		WorkMinutes:             cfg.WorkMinutes,
		ShortBreakMinutes:       cfg.ShortBreakMinutes,
		LongBreakMinutes:        cfg.LongBreakMinutes,
		SessionsBeforeLongBreak: cfg.SessionsBeforeLongBreak,
		DailyGoalMinutes:        cfg.DailyGoalMinutes,
		AlarmSound:              cfg.AlarmSound,
		DBPath:                  cfg.DBPath,
		LogPath:                 cfg.LogPath,
	})
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyYaml(cfg *Config, fileData yamlConfig) {
	if fileData.WorkMinutes > 0 {
		cfg.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		cfg.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		cfg.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.SessionsBeforeLongBreak > 0 {
		cfg.SessionsBeforeLongBreak = fileData.SessionsBeforeLongBreak
	}
	if fileData.DailyGoalMinutes > 0 {
		cfg.DailyGoalMinutes = fileData.DailyGoalMinutes
	}
	if validAlarm(fileData.AlarmSound) {
		cfg.AlarmSound = fileData.AlarmSound
	}
	if fileData.DBPath != "" {
		cfg.DBPath = fileData.DBPath
	}
	if fileData.LogPath != "" {
		cfg.LogPath = fileData.LogPath
	}
}

// ApplySettings overlays persisted settings. Unknown keys and invalid
// values are skipped.
func (c *Config) ApplySettings(settings map[string]string) {
	for _, key := range SettingKeys {
		raw, ok := settings[key]
		if !ok {
			continue
		}
		value, err := ParseSetting(key, raw)
		if err != nil {
			continue
		}
		c.set(key, value)
	}
}

func (c *Config) set(key, value string) {
	n, _ := strconv.Atoi(value)
	switch key {
	case KeyWorkDuration:
		c.WorkMinutes = n
	case KeyBreakDuration:
		c.ShortBreakMinutes = n
	case KeyLongBreakDuration:
		c.LongBreakMinutes = n
	case KeySessionsBeforeLongBreak:
		c.SessionsBeforeLongBreak = n
	case KeyDailyGoalMinutes:
		c.DailyGoalMinutes = n
	case KeyAlarmSound:
		c.AlarmSound = value
	}
}

// Settings returns the persisted form of the user-editable fields.
func (c Config) Settings() map[string]string {
	return map[string]string{
		KeyWorkDuration:            strconv.Itoa(c.WorkMinutes),
		KeyBreakDuration:           strconv.Itoa(c.ShortBreakMinutes),
		KeyLongBreakDuration:       strconv.Itoa(c.LongBreakMinutes),
		KeySessionsBeforeLongBreak: strconv.Itoa(c.SessionsBeforeLongBreak),
		KeyDailyGoalMinutes:        strconv.Itoa(c.DailyGoalMinutes),
		KeyAlarmSound:              c.AlarmSound,
	}
}

// ParseSetting validates a user-entered value for key and returns its
// canonical form.
func ParseSetting(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyWorkDuration, KeyBreakDuration, KeyLongBreakDuration:
		return parseRange(key, value, 1, 240)
	case KeySessionsBeforeLongBreak:
		return parseRange(key, value, 1, 12)
	case KeyDailyGoalMinutes:
		return parseRange(key, value, 1, 24*60)
	case KeyAlarmSound:
		v := strings.ToLower(value)
		if !validAlarm(v) {
			return "", fmt.Errorf("%w: %s must be one of %s", ErrInvalid, key, strings.Join(AlarmSounds, ", "))
		}
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown setting %q", ErrInvalid, key)
}

func parseRange(key, value string, lo, hi int) (string, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return "", fmt.Errorf("%w: %s must be a whole number between %d and %d", ErrInvalid, key, lo, hi)
	}
	return strconv.Itoa(n), nil
}

func validAlarm(v string) bool {
	for _, s := range AlarmSounds {
		if v == s {
			return true
		}
	}
	return false
}

// Validate reports whether every timing field is positive.
func (c Config) Validate() error {
	switch {
	case c.WorkMinutes <= 0:
		return fmt.Errorf("%w: work minutes must be positive", ErrInvalid)
	case c.ShortBreakMinutes <= 0:
		return fmt.Errorf("%w: short break minutes must be positive", ErrInvalid)
	case c.LongBreakMinutes <= 0:
		return fmt.Errorf("%w: long break minutes must be positive", ErrInvalid)
	case c.SessionsBeforeLongBreak <= 0:
		return fmt.Errorf("%w: sessions before long break must be positive", ErrInvalid)
	case c.DailyGoalMinutes <= 0:
		return fmt.Errorf("%w: daily goal must be positive", ErrInvalid)
	}
	return nil
}

// TimerConfig converts the minute-based fields to engine seconds.
func (c Config) TimerConfig() timer.Config {
	return timer.Config{
		WorkSeconds:             c.WorkMinutes * 60,
		ShortBreakSeconds:       c.ShortBreakMinutes * 60,
		LongBreakSeconds:        c.LongBreakMinutes * 60,
		SessionsBeforeLongBreak: c.SessionsBeforeLongBreak,
	}
}
