package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures where photogroove finds its collaborators.
type Config struct {
	FeedURL    string // photo feed base url; the list lives at <FeedURL>list.json
	FilterHost string // render host bind; empty disables filter posts
	LogFile    string // diagnostics log path (the TUI owns the terminal)
	Debug      bool   // raises the log level
}

const (
	defaultConfigPath = "~/.config/photogroove/config.toml"
	defaultFeedURL    = "http://127.0.0.1:7711/photos/"
	defaultFilterHost = "127.0.0.1:7711"
	defaultLogFile    = "~/.local/share/photogroove/photogroove.log"
)

// Load locates and parses the config, falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		FeedURL:    defaultFeedURL,
		FilterHost: defaultFilterHost,
		LogFile:    mustExpand(defaultLogFile),
	}

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
		FeedURL    string `toml:"feed_url"`
		FilterHost string `toml:"filter_host"`
		LogFile    string `toml:"log_file"`
		Debug      bool   `toml:"debug"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if feedURL := strings.TrimSpace(raw.FeedURL); feedURL != "" {
		cfg.FeedURL = feedURL
	}
	cfg.FilterHost = strings.TrimSpace(raw.FilterHost)
	if cfg.FilterHost == "" {
		cfg.FilterHost = defaultFilterHost
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.Debug = raw.Debug

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
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
