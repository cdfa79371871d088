package formats

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"flac24", FLAC24},
		{"FLAC", FLAC16},
		{"Lossless", FLAC16},
		{"320", MP3320},
		{"V0 (VBR)", MP3V0},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := Parse("ogg"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestTargetsFor24BitSource(t *testing.T) {
	provider := NewProvider(nil)
	targets := provider.Targets(FLAC24, NewSet())
	want := []Format{FLAC16, MP3320, MP3V0}
	if len(targets) != len(want) {
		t.Fatalf("targets = %v, want %v", targets, want)
	}
	for i, format := range want {
		if targets[i] != format {
			t.Fatalf("targets = %v, want %v", targets, want)
		}
	}
}

func TestTargetsExcludeExistingAndOwnFormat(t *testing.T) {
	provider := NewProvider(nil)
	targets := provider.Targets(FLAC16, NewSet(MP3320))
	if len(targets) != 1 || targets[0] != MP3V0 {
		t.Fatalf("targets = %v, want [%s]", targets, MP3V0)
	}
}

func TestTargetsEmptyWhenGroupComplete(t *testing.T) {
	provider := NewProvider(nil)
	targets := provider.Targets(FLAC16, NewSet(MP3320, MP3V0))
	if len(targets) != 0 {
		t.Fatalf("expected no targets, got %v", targets)
	}
}

func TestTargetsHonorAllowedList(t *testing.T) {
	provider := NewProvider(NewSet(MP3V0))
	targets := provider.Targets(FLAC24, NewSet())
	if len(targets) != 1 || targets[0] != MP3V0 {
		t.Fatalf("targets = %v, want [%s]", targets, MP3V0)
	}
}

func TestFormatHelpers(t *testing.T) {
	if !FLAC24.Lossless() || MP3320.Lossless() {
		t.Fatal("lossless classification wrong")
	}
	if FLAC16.Extension() != ".flac" || MP3V0.Extension() != ".mp3" {
		t.Fatal("extension mapping wrong")
	}
	if FLAC24.Label() != "FLAC 24bit" {
		t.Fatalf("label = %q", FLAC24.Label())
	}
}
