package formats

import (
	"fmt"
	"strings"
)

// Format identifies an audio encoding handled by crescendo, either as a
// lossless master or a transcode target.
type Format string

const (
	FLAC24 Format = "flac24"
	FLAC16 Format = "flac16"
	MP3320 Format = "mp3-320"
	MP3V0  Format = "mp3-v0"
)

var all = []Format{FLAC24, FLAC16, MP3320, MP3V0}

// Parse resolves a config or tracker spelling into a Format.
func Parse(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "flac24", "flac 24", "24bit lossless", "flac 24bit":
		return FLAC24, nil
	case "flac16", "flac", "lossless":
		return FLAC16, nil
	case "mp3-320", "320", "mp3 320":
		return MP3320, nil
	case "mp3-v0", "v0", "v0 (vbr)", "mp3 v0":
		return MP3V0, nil
	default:
		return "", fmt.Errorf("unknown format %q", value)
	}
}

// Lossless reports whether the format is a FLAC master.
func (f Format) Lossless() bool {
	return f == FLAC24 || f == FLAC16
}

// Extension returns the file extension transcodes in this format use.
func (f Format) Extension() string {
	if f.Lossless() {
		return ".flac"
	}
	return ".mp3"
}

// Label returns the bracketed release-folder label for the format.
func (f Format) Label() string {
	switch f {
	case FLAC24:
		return "FLAC 24bit"
	case FLAC16:
		return "FLAC"
	case MP3320:
		return "MP3 320"
	case MP3V0:
		return "MP3 V0"
	default:
		return string(f)
	}
}

// Set is an unordered collection of formats.
type Set map[Format]struct{}

// NewSet builds a set from the given formats.
func NewSet(members ...Format) Set {
	set := make(Set, len(members))
	for _, member := range members {
		set[member] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s Set) Has(f Format) bool {
	_, ok := s[f]
	return ok
}

// Provider computes eligible transcode targets for a source.
type Provider struct {
	allowed Set
}

// NewProvider restricts targets to the allowed set. A nil or empty allowed
// set permits every target.
func NewProvider(allowed Set) *Provider {
	return &Provider{allowed: allowed}
}

// Targets returns the transcode formats still worth producing for a source:
// every candidate target except the source's own encoding and formats the
// release group already has. A 16-bit FLAC source cannot yield a FLAC target;
// a 24-bit source can (the 16-bit downconvert).
func (p *Provider) Targets(source Format, existing Set) []Format {
	targets := make([]Format, 0, len(all))
	for _, candidate := range all {
		if candidate == FLAC24 {
			continue // never a transcode target
		}
		if candidate == FLAC16 && source != FLAC24 {
			continue
		}
		if candidate == source {
			continue
		}
		if existing.Has(candidate) {
			continue
		}
		if len(p.allowed) > 0 && !p.allowed.Has(candidate) {
			continue
		}
		targets = append(targets, candidate)
	}
	return targets
}
