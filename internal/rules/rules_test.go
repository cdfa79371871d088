package rules

import (
	"strings"
	"testing"
)

func TestStringIncludesPathAndDetail(t *testing.T) {
	rule := AtDetail(ArtistMismatch, "/music/01.flac", "got \"X\", want \"Y\"")
	rendered := rule.String()
	if !strings.Contains(rendered, "/music/01.flac") {
		t.Fatalf("expected path in rendering, got %q", rendered)
	}
	if !strings.Contains(rendered, "got \"X\", want \"Y\"") {
		t.Fatalf("expected detail in rendering, got %q", rendered)
	}
}

func TestEveryKindRenders(t *testing.T) {
	kinds := []Kind{
		SceneNotSupported, LossyMasterNeedsApproval, LossyWebNeedsApproval,
		NoTranscodeFormats, SourceDirectoryNotFound, NoFlacFiles, PathTooLong,
		MissingArtist, MissingAlbum, MissingTitle, MissingTrackNumber,
		ArtistMismatch, AlbumMismatch, YearMismatch, TitleMismatch,
		TrackNumberMismatch,
		BrokenStream, StreamHashMismatch, TooManyChannels, UnsupportedSampleRate,
		HashMismatch,
	}
	for _, kind := range kinds {
		rendered := New(kind).String()
		if rendered == "" {
			t.Fatalf("kind %d rendered empty", int(kind))
		}
		if strings.Contains(rendered, "unknown rule kind") {
			t.Fatalf("kind %d has no rendering: %q", int(kind), rendered)
		}
	}
}

func TestPhaseAssignment(t *testing.T) {
	cases := []struct {
		kind Kind
		want Phase
	}{
		{SceneNotSupported, PhasePolicy},
		{NoTranscodeFormats, PhasePolicy},
		{SourceDirectoryNotFound, PhaseFiles},
		{PathTooLong, PhaseFiles},
		{BrokenStream, PhaseFiles},
		{ArtistMismatch, PhaseFiles},
		{HashMismatch, PhaseHash},
	}
	for _, tc := range cases {
		if got := tc.kind.Phase(); got != tc.want {
			t.Fatalf("kind %d: phase %q, want %q", int(tc.kind), got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	list := []Rule{New(SceneNotSupported), At(PathTooLong, "/a")}
	if !Contains(list, PathTooLong) {
		t.Fatal("expected PathTooLong present")
	}
	if Contains(list, HashMismatch) {
		t.Fatal("did not expect HashMismatch")
	}
}
