/*
Package config manages the TOML settings file for langtrainer.

A missing or unreadable settings file never stops the program: every
failure falls back to built-in defaults and is reported as a warning.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/options"
	"github.com/abhisek/langtrainer/internal/sampler"
)

const (
	// DefaultIntervalMinutes is the pause between exercises.
	DefaultIntervalMinutes = 120

	appName  = "langtrainer"
	fileName = "config.toml"
)

// Config holds the entire settings structure.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Decks    DecksConfig    `toml:"decks"`
	Drill    DrillConfig    `toml:"drill"`
	Language LanguageConfig `toml:"language"`
	Log      LogConfig      `toml:"log"`
	LLM      LLMConfig      `toml:"llm"`
}

// ScheduleConfig controls how often an exercise is shown.
type ScheduleConfig struct {
	IntervalMinutes      int `toml:"interval_minutes"`
	DebugIntervalSeconds int `toml:"debug_interval_seconds"`
}

// DecksConfig locates the deck files.
type DecksConfig struct {
	DataDir string `toml:"data_dir"`
}

// DrillConfig tunes exercise selection and rendering.
type DrillConfig struct {
	OptionCount   int `toml:"option_count"`
	RecencyWindow int `toml:"recency_window"`
}

// LanguageConfig holds target-language data used by the affix suppressor.
type LanguageConfig struct {
	Clitics          []string `toml:"clitics"`
	EndingTypeMarker string   `toml:"ending_type_marker"`
}

// LLMConfig selects the model used by `langtrainer generate`. Empty
// values defer to LANGTRAINER_* environment variables and API key discovery.
type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			IntervalMinutes: DefaultIntervalMinutes,
		},
		Drill: DrillConfig{
			OptionCount:   options.DefaultCount,
			RecencyWindow: sampler.DefaultRecencyWindow,
		},
		Language: LanguageConfig{
			Clitics:          append([]string(nil), affix.DefaultClitics...),
			EndingTypeMarker: affix.DefaultEndingMarker,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Interval returns the pause between exercises. A positive debug interval
// in seconds overrides the minutes setting.
func (c *Config) Interval() time.Duration {
	if c.Schedule.DebugIntervalSeconds > 0 {
		return time.Duration(c.Schedule.DebugIntervalSeconds) * time.Second
	}
	minutes := c.Schedule.IntervalMinutes
	if minutes <= 0 {
		minutes = DefaultIntervalMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// sanitize replaces out-of-range values with defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Schedule.IntervalMinutes <= 0 {
		c.Schedule.IntervalMinutes = def.Schedule.IntervalMinutes
	}
	if c.Schedule.DebugIntervalSeconds < 0 {
		c.Schedule.DebugIntervalSeconds = 0
	}
	if c.Drill.OptionCount <= 0 {
		c.Drill.OptionCount = def.Drill.OptionCount
	}
	if c.Drill.RecencyWindow < 0 {
		c.Drill.RecencyWindow = def.Drill.RecencyWindow
	}
	if len(c.Language.Clitics) == 0 {
		c.Language.Clitics = def.Language.Clitics
	}
	if c.LLM.TimeoutSeconds < 0 {
		c.LLM.TimeoutSeconds = 0
	}
}

// Dir returns the settings directory: $XDG_CONFIG_HOME/langtrainer, or
// the platform equivalent.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// DefaultPath returns the default path of config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DataHome returns $XDG_DATA_HOME/langtrainer, falling back to
// ~/.local/share/langtrainer.
func DataHome() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// ResolveDataDir picks the deck directory in priority order:
//  1. flag value
//  2. LANGTRAINER_DATA environment variable
//  3. decks.data_dir from the settings file
//  4. $XDG_DATA_HOME/langtrainer/decks
func (c *Config) ResolveDataDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("LANGTRAINER_DATA"); env != "" {
		return env, nil
	}
	if c.Decks.DataDir != "" {
		return expandHome(c.Decks.DataDir), nil
	}
	home, err := DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "decks"), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// LoadWithPriority loads settings with priority:
//  1. custom path from --config
//  2. default path, created with defaults when missing
//  3. built-in defaults
//
// It returns the path the settings came from, or "" for built-in defaults.
func LoadWithPriority(customPath string, logger *log.Logger) (*Config, string) {
	if customPath != "" {
		cfg, err := Load(customPath)
		if err == nil {
			logger.Debug("loaded config", "path", customPath)
			return cfg, customPath
		}
		logger.Warn("failed to load custom config, trying default path", "path", customPath, "err", err)
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		logger.Warn("cannot determine config path, using defaults", "err", err)
		return DefaultConfig(), ""
	}

	cfg, err := Load(defaultPath)
	switch {
	case err == nil:
		logger.Debug("loaded config", "path", defaultPath)
		return cfg, defaultPath
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := Save(cfg, defaultPath); err != nil {
			logger.Warn("failed to create default config, using defaults", "path", defaultPath, "err", err)
			return cfg, ""
		}
		logger.Debug("created default config", "path", defaultPath)
		return cfg, defaultPath
	default:
		logger.Warn("failed to load config, using defaults", "path", defaultPath, "err", err)
		return DefaultConfig(), ""
	}
}
