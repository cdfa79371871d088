package source

import (
	"fmt"
	"strings"

	"crescendo/internal/formats"
)

// Torrent carries the tracker-side policy metadata for a source.
//
// The approval flags are tri-state: nil when the tracker did not report the
// field, otherwise the literal reported value. Policy checks compare against
// the literal value reported by the tracker.
type Torrent struct {
	ID                  int64
	Scene               bool
	LossyMasterApproved *bool
	LossyWebApproved    *bool
}

// Track is the expected tag content for one track of the release.
type Track struct {
	Number int
	Title  string
}

// Release is the descriptive metadata the release's files are checked
// against.
type Release struct {
	Artist string
	Album  string
	Year   int
	Tracks []Track
}

// Source is one release under verification.
type Source struct {
	Directory string
	Format    formats.Format
	Existing  formats.Set
	Torrent   Torrent
	Release   Release
}

func (s *Source) String() string {
	if s == nil {
		return "<nil source>"
	}
	var b strings.Builder
	if s.Release.Artist != "" {
		b.WriteString(s.Release.Artist)
		b.WriteString(" - ")
	}
	if s.Release.Album != "" {
		b.WriteString(s.Release.Album)
	} else {
		b.WriteString(s.Directory)
	}
	if s.Release.Year > 0 {
		fmt.Fprintf(&b, " (%d)", s.Release.Year)
	}
	fmt.Fprintf(&b, " [%s]", s.Format.Label())
	return b.String()
}

// FolderName renders the canonical release folder name for a target format.
func (s *Source) FolderName(target formats.Format) string {
	var b strings.Builder
	if s.Release.Artist != "" {
		b.WriteString(s.Release.Artist)
		b.WriteString(" - ")
	}
	b.WriteString(s.Release.Album)
	if s.Release.Year > 0 {
		fmt.Fprintf(&b, " (%d)", s.Release.Year)
	}
	fmt.Fprintf(&b, " [%s]", target.Label())
	return b.String()
}

// BoolPtr is a convenience for building tri-state approval flags.
func BoolPtr(v bool) *bool {
	return &v
}
