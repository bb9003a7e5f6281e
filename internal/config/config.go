package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds cadence's runtime settings.
type Config struct {
	AppName       string
	OSAScript     string
	PollInterval  time.Duration
	ScriptTimeout time.Duration
	LibraryEvery  int
	QueueSize     int
	SearchLimit   int
	LogFile       string
}

const (
	defaultConfigPath    = "~/.config/cadence/config.toml"
	defaultAppName       = "Music"
	defaultOSAScript     = "/usr/bin/osascript"
	defaultPollInterval  = 2 * time.Second
	defaultScriptTimeout = 5 * time.Second
	defaultLibraryEvery  = 15
	defaultQueueSize     = 10
	defaultSearchLimit   = 50
	defaultLogFile       = "~/.local/state/cadence/cadence.log"

	minPollInterval = 250 * time.Millisecond
)

// Default returns the built-in settings with paths expanded.
func Default() Config {
	return Config{
		AppName:       defaultAppName,
		OSAScript:     defaultOSAScript,
		PollInterval:  defaultPollInterval,
		ScriptTimeout: defaultScriptTimeout,
		LibraryEvery:  defaultLibraryEvery,
		QueueSize:     defaultQueueSize,
		SearchLimit:   defaultSearchLimit,
		LogFile:       mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Blank or non-positive values also fall back.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		AppName       string `toml:"app_name"`
		OSAScript     string `toml:"osascript"`
		PollInterval  string `toml:"poll_interval"`
		ScriptTimeout string `toml:"script_timeout"`
		LibraryEvery  int    `toml:"library_every"`
		QueueSize     int    `toml:"queue_size"`
		SearchLimit   int    `toml:"search_limit"`
		LogFile       string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.AppName); v != "" {
		cfg.AppName = v
	}
	if v := strings.TrimSpace(raw.OSAScript); v != "" {
		cfg.OSAScript = mustExpand(v)
	}
	if cfg.PollInterval, err = parseDuration(raw.PollInterval, defaultPollInterval); err != nil {
		return Config{}, fmt.Errorf("parse poll_interval: %w", err)
	}
	if cfg.PollInterval < minPollInterval {
		cfg.PollInterval = minPollInterval
	}
	if cfg.ScriptTimeout, err = parseDuration(raw.ScriptTimeout, defaultScriptTimeout); err != nil {
		return Config{}, fmt.Errorf("parse script_timeout: %w", err)
	}
	if raw.LibraryEvery > 0 {
		cfg.LibraryEvery = raw.LibraryEvery
	}
	if raw.QueueSize > 0 {
		cfg.QueueSize = raw.QueueSize
	}
	if raw.SearchLimit > 0 {
		cfg.SearchLimit = raw.SearchLimit
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// WithPoll returns cfg with the poll interval replaced when d is positive.
func (c Config) WithPoll(d time.Duration) Config {
	if d > 0 {
		c.PollInterval = max(d, minPollInterval)
	}
	return c
}

// WithLogFile returns cfg with the log file replaced when path is non-blank.
func (c Config) WithLogFile(path string) Config {
	if strings.TrimSpace(path) != "" {
		c.LogFile = mustExpand(path)
	}
	return c
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
