package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"crescendo/internal/formats"
	"crescendo/internal/source"
)

func testSource(dir string) *source.Source {
	return &source.Source{
		Directory: dir,
		Format:    formats.FLAC24,
		Release:   source.Release{Artist: "Artist", Album: "Album", Year: 2020},
	}
}

func TestTranscodeSubPathSwapsExtension(t *testing.T) {
	dir := filepath.Join("/music", "src")
	src := testSource(dir)
	got := TranscodeSubPath(src, filepath.Join(dir, "CD1", "01. Intro.flac"), formats.MP3V0)
	want := filepath.Join("Artist - Album (2020) [MP3 V0]", "CD1", "01. Intro.mp3")
	if got != want {
		t.Fatalf("sub path = %q, want %q", got, want)
	}
}

func TestTranscodeSubPathKeepsFlacExtensionForFlacTarget(t *testing.T) {
	dir := filepath.Join("/music", "src")
	src := testSource(dir)
	got := TranscodeSubPath(src, filepath.Join(dir, "01. Intro.flac"), formats.FLAC16)
	if !strings.HasSuffix(got, ".flac") {
		t.Fatalf("expected .flac suffix, got %q", got)
	}
}

func TestMaxTranscodeSubPathPicksLongest(t *testing.T) {
	dir := filepath.Join("/music", "src")
	src := testSource(dir)
	flac := filepath.Join(dir, "01. Intro.flac")
	targets := []formats.Format{formats.FLAC16, formats.MP3320, formats.MP3V0}
	got := MaxTranscodeSubPath(src, flac, targets)
	for _, target := range targets {
		if len(TranscodeSubPath(src, flac, target)) > len(got) {
			t.Fatalf("candidate for %s longer than reported max", target)
		}
	}
	// FLAC 24bit -> FLAC keeps the longer label and extension.
	if !strings.Contains(got, "[FLAC]") && !strings.Contains(got, "[MP3 320]") {
		t.Fatalf("unexpected max path %q", got)
	}
}

func TestMaxTranscodeSubPathEmptyWithoutTargets(t *testing.T) {
	src := testSource("/music/src")
	if got := MaxTranscodeSubPath(src, "/music/src/a.flac", nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
