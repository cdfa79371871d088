package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
content_dir = %q
log_dir = %q
cache_dir = %q

[tracker]
url = "https://tracker.test"
api_key = "test-key"
`,
		filepath.Join(base, "content"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "cache"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"verify", "watch", "history", "config", "deps"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVerifyRejectsBadTorrentID(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", cfgPath, "verify", "not-a-number")
	if err == nil || !strings.Contains(err.Error(), "invalid torrent id") {
		t.Fatalf("expected invalid torrent id error, got %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "crescendo", "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output %q does not mention %q", out, target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[tracker]") {
		t.Errorf("sample missing tracker section:\n%s", data)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	cfgPath := writeTestConfig(t)
	t.Setenv("HOME", filepath.Dir(cfgPath))

	out, err := runCommand(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "test-key") {
		t.Errorf("api key leaked in output:\n%s", out)
	}
}

func TestWatchRequiresEnabled(t *testing.T) {
	cfgPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", cfgPath, "watch")
	if err == nil || !strings.Contains(err.Error(), "watch mode is disabled") {
		t.Fatalf("expected disabled watch error, got %v", err)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Rule", "Path"},
		[][]string{{"PathTooLong", "a/b.flac"}, {"SceneNotSupported"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	for _, want := range []string{"RULE", "PathTooLong", "a/b.flac", "SceneNotSupported"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestReadTorrentIDMarker(t *testing.T) {
	dir := t.TempDir()
	if _, err := readTorrentIDMarker(dir); err == nil {
		t.Error("expected error for missing marker")
	}

	markerPath := filepath.Join(dir, torrentIDMarker)
	if err := os.WriteFile(markerPath, []byte(" 4242 \n"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	id, err := readTorrentIDMarker(dir)
	if err != nil {
		t.Fatalf("readTorrentIDMarker: %v", err)
	}
	if id != 4242 {
		t.Errorf("id = %d, want 4242", id)
	}

	if err := os.WriteFile(markerPath, []byte("zero\n"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}
	if _, err := readTorrentIDMarker(dir); err == nil {
		t.Error("expected error for non-numeric marker")
	}
}
