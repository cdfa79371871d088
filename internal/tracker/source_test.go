package tracker

import (
	"path/filepath"
	"testing"

	"crescendo/internal/formats"
)

func boolPtr(v bool) *bool { return &v }

func sampleResponse() *TorrentResponse {
	return &TorrentResponse{
		Group: Group{
			ID:        7,
			Name:      "Album",
			Year:      2001,
			MusicInfo: MusicInfo{Artists: []Artist{{ID: 1, Name: "Artist"}}},
		},
		Torrent: Torrent{
			ID:       42,
			Media:    "CD",
			Format:   "FLAC",
			Encoding: "24bit Lossless",
			FilePath: "Artist - Album (2001) [FLAC24]",
		},
	}
}

func TestReleaseFormat(t *testing.T) {
	cases := []struct {
		format   string
		encoding string
		want     formats.Format
	}{
		{"FLAC", "24bit Lossless", formats.FLAC24},
		{"FLAC", "Lossless", formats.FLAC16},
		{"MP3", "320", formats.MP3320},
		{"MP3", "V0 (VBR)", formats.MP3V0},
	}
	for _, tc := range cases {
		got, err := ReleaseFormat(tc.format, tc.encoding)
		if err != nil {
			t.Fatalf("ReleaseFormat(%q, %q): %v", tc.format, tc.encoding, err)
		}
		if got != tc.want {
			t.Fatalf("ReleaseFormat(%q, %q) = %q, want %q", tc.format, tc.encoding, got, tc.want)
		}
	}
	if _, err := ReleaseFormat("AAC", "256"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestBuildSource(t *testing.T) {
	resp := sampleResponse()
	resp.Torrent.Scene = true
	resp.Torrent.LossyMasterApproved = boolPtr(true)

	src, err := BuildSource(resp, nil, "/music/torrents")
	if err != nil {
		t.Fatalf("BuildSource: %v", err)
	}
	if src.Directory != filepath.Join("/music/torrents", resp.Torrent.FilePath) {
		t.Fatalf("directory = %q", src.Directory)
	}
	if src.Format != formats.FLAC24 {
		t.Fatalf("format = %q", src.Format)
	}
	if !src.Torrent.Scene {
		t.Fatal("scene flag not carried over")
	}
	if src.Torrent.LossyMasterApproved == nil || !*src.Torrent.LossyMasterApproved {
		t.Fatal("approval flag not carried over")
	}
	if src.Release.Artist != "Artist" || src.Release.Album != "Album" || src.Release.Year != 2001 {
		t.Fatalf("release = %+v", src.Release)
	}
}

func TestBuildSourceRejectsLossyTorrent(t *testing.T) {
	resp := sampleResponse()
	resp.Torrent.Format = "MP3"
	resp.Torrent.Encoding = "320"
	if _, err := BuildSource(resp, nil, "/music"); err == nil {
		t.Fatal("expected error for lossy source torrent")
	}
}

func TestBuildSourceVariousArtistsAndRemasterYear(t *testing.T) {
	resp := sampleResponse()
	resp.Group.MusicInfo.Artists = []Artist{{Name: "A"}, {Name: "B"}}
	resp.Torrent.RemasterYear = 2015

	src, err := BuildSource(resp, nil, "/music")
	if err != nil {
		t.Fatalf("BuildSource: %v", err)
	}
	if src.Release.Artist != "Various Artists" {
		t.Fatalf("artist = %q", src.Release.Artist)
	}
	if src.Release.Year != 2015 {
		t.Fatalf("year = %d", src.Release.Year)
	}
}

func TestExistingFormatsFiltersEditionAndSelf(t *testing.T) {
	self := Torrent{ID: 42, Media: "CD", Format: "FLAC", Encoding: "24bit Lossless"}
	siblings := []Torrent{
		self,
		{ID: 43, Media: "CD", Format: "MP3", Encoding: "320"},
		{ID: 44, Media: "WEB", Format: "MP3", Encoding: "V0 (VBR)"},            // different media
		{ID: 45, Media: "CD", Format: "MP3", Encoding: "V0 (VBR)", RemasterYear: 2010}, // different edition
		{ID: 46, Media: "CD", Format: "AAC", Encoding: "256"},                  // unknown format
	}
	existing := ExistingFormats(siblings, self)
	if !existing.Has(formats.MP3320) {
		t.Fatal("expected MP3 320 present")
	}
	if existing.Has(formats.MP3V0) {
		t.Fatal("different media/edition should not count")
	}
	if len(existing) != 1 {
		t.Fatalf("existing = %v", existing)
	}
}
