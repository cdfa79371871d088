// Package testsupport holds shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"crescendo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ContentDir = filepath.Join(base, "content")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Tracker.URL = "https://tracker.test"
	cfgVal.Tracker.APIKey = "test-key"
	cfgVal.Watch.Dir = filepath.Join(base, "watch")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the tracker API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracker.APIKey = key
	}
}

// WithTrackerURL overrides the tracker endpoint on the test config.
func WithTrackerURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracker.URL = url
	}
}

// WithSkipHashCheck toggles hash checking on the test config.
func WithSkipHashCheck(skip bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Verify.SkipHashCheck = skip
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, imdl is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"imdl"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		newPath := binDir
		if oldPath != "" {
			newPath = binDir + string(os.PathListSeparator) + oldPath
		}
		if tt, ok := b.t.(*testing.T); ok {
			tt.Setenv("PATH", newPath)
			return
		}
		if err := os.Setenv("PATH", newPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}
