package flacfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInspectMissingFileFailsHard(t *testing.T) {
	inspector := Inspector{}
	if _, err := inspector.Inspect(context.Background(), filepath.Join(t.TempDir(), "absent.flac")); err == nil {
		t.Fatal("expected hard error for missing file")
	}
}

func TestInspectGarbageFileReportsBrokenStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.flac")
	if err := os.WriteFile(path, []byte("not a flac stream"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	inspector := Inspector{}
	info, err := inspector.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !info.Broken {
		t.Fatal("expected Broken for garbage content")
	}
	if info.Path != path {
		t.Fatalf("info path = %q, want %q", info.Path, path)
	}
}
