package config

import (
	"errors"
	"fmt"

	"crescendo/internal/formats"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTracker(); err != nil {
		return err
	}
	if err := c.validateVerify(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTracker() error {
	if c.Tracker.URL == "" {
		return errors.New("tracker.url must be set")
	}
	if c.Tracker.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/crescendo/config.toml"
		}
		return fmt.Errorf("tracker.api_key is required. Set TRACKER_API_KEY env var or edit %s (create with 'crescendo config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateVerify() error {
	if c.Verify.Workers < 0 {
		return errors.New("verify.workers must not be negative")
	}
	for _, target := range c.Verify.AllowedTargets {
		format, err := formats.Parse(target)
		if err != nil {
			return fmt.Errorf("verify.allowed_targets: %w", err)
		}
		if format == formats.FLAC24 {
			return errors.New("verify.allowed_targets: flac24 is never a transcode target")
		}
	}
	return nil
}

func (c *Config) validateWatch() error {
	if !c.Watch.Enabled {
		return nil
	}
	if c.Watch.Dir == "" {
		return errors.New("watch.dir must be set when watch.enabled is true")
	}
	if c.Watch.SettleSeconds <= 0 {
		return errors.New("watch.settle_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// AllowedTargetSet parses verify.allowed_targets into a format set. Call
// only after Validate has succeeded.
func (c *Config) AllowedTargetSet() formats.Set {
	set := formats.NewSet()
	for _, target := range c.Verify.AllowedTargets {
		if format, err := formats.Parse(target); err == nil {
			set[format] = struct{}{}
		}
	}
	return set
}
