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

// Config captures the fields BrickBase needs to reach its backend and
// lay out local storage.
type Config struct {
	APIBase     string
	Token       string
	Email       string
	Password    string
	DataDir     string
	ShareDir    string
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/brickbase/config.toml"
	defaultDataDir     = "~/.local/share/brickbase"
	defaultAPIBase     = "127.0.0.1:8000"
	defaultPollSeconds = 30
)

// Load locates and parses the BrickBase config, falling back to
// defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, PollSeconds: defaultPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.DataDir = mustExpand(defaultDataDir)
			cfg.ShareDir = filepath.Join(cfg.DataDir, "share")
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
		APIBase     string `toml:"api_base"`
		Token       string `toml:"token"`
		Email       string `toml:"email"`
		Password    string `toml:"password"`
		DataDir     string `toml:"data_dir"`
		ShareDir    string `toml:"share_dir"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	cfg.Token = strings.TrimSpace(raw.Token)
	cfg.Email = strings.TrimSpace(raw.Email)
	cfg.Password = raw.Password

	cfg.DataDir = strings.TrimSpace(raw.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.DataDir = mustExpand(cfg.DataDir)

	cfg.ShareDir = strings.TrimSpace(raw.ShareDir)
	if cfg.ShareDir == "" {
		cfg.ShareDir = filepath.Join(cfg.DataDir, "share")
	} else {
		cfg.ShareDir = mustExpand(cfg.ShareDir)
	}

	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return cfg, nil
}

// CacheDBPath returns the path of the offline cache database.
func (c Config) CacheDBPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/cache.db")
	}
	return filepath.Join(c.DataDir, "cache.db")
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
