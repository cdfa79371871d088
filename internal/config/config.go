package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// ContentDir is where tracker downloads live; torrent file paths are
	// resolved relative to it.
	ContentDir string `toml:"content_dir"`
	LogDir     string `toml:"log_dir"`
	CacheDir   string `toml:"cache_dir"`
}

// Tracker contains configuration for the tracker API.
type Tracker struct {
	URL       string `toml:"url"`
	APIKey    string `toml:"api_key"`
	UserAgent string `toml:"user_agent"`
}

// Verify contains configuration for the verification pipeline.
type Verify struct {
	SkipHashCheck bool `toml:"skip_hash_check"`
	// FullDecode enables the frame-by-frame stream integrity pass.
	FullDecode bool `toml:"full_decode"`
	// Workers bounds the per-file check pool; 0 means one per CPU.
	Workers int `toml:"workers"`
	// AllowedTargets restricts transcode targets; empty allows all.
	AllowedTargets []string `toml:"allowed_targets"`
	// ImdlBinary overrides the imdl executable used for hash checks.
	ImdlBinary string `toml:"imdl_binary"`
}

// Watch contains configuration for watch mode.
type Watch struct {
	Enabled       bool   `toml:"enabled"`
	Dir           string `toml:"dir"`
	SettleSeconds int    `toml:"settle_seconds"`
}

// Journal contains configuration for the verification history database.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for crescendo.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tracker Tracker `toml:"tracker"`
	Verify  Verify  `toml:"verify"`
	Watch   Watch   `toml:"watch"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/crescendo/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the configuration references.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.CacheDir}
	if c.Watch.Enabled && c.Watch.Dir != "" {
		dirs = append(dirs, c.Watch.Dir)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, creating
// parent directories as needed. It refuses to overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
