package rules

import (
	"fmt"
	"strings"
)

// Phase identifies the verification stage that produced a rule.
type Phase string

const (
	PhasePolicy Phase = "policy"
	PhaseFiles  Phase = "files"
	PhaseHash   Phase = "hash"
)

// Kind enumerates every verification finding crescendo can produce.
type Kind int

const (
	// Policy findings evaluated against torrent metadata.
	SceneNotSupported Kind = iota
	LossyMasterNeedsApproval
	LossyWebNeedsApproval
	NoTranscodeFormats

	// Filesystem findings.
	SourceDirectoryNotFound
	NoFlacFiles
	PathTooLong

	// Per-file tag findings.
	MissingArtist
	MissingAlbum
	MissingTitle
	MissingTrackNumber
	ArtistMismatch
	AlbumMismatch
	YearMismatch
	TitleMismatch
	TrackNumberMismatch

	// Per-file stream findings.
	BrokenStream
	StreamHashMismatch
	TooManyChannels
	UnsupportedSampleRate

	// Hash-check findings.
	HashMismatch
)

// Rule is a single structured verification finding. Path carries the
// offending file or directory where the kind calls for one; Detail carries
// extra context such as a got/want rendering or external tool output.
type Rule struct {
	Kind   Kind
	Path   string
	Detail string
}

// New returns a rule without location context.
func New(kind Kind) Rule {
	return Rule{Kind: kind}
}

// At returns a rule bound to a path.
func At(kind Kind, path string) Rule {
	return Rule{Kind: kind, Path: path}
}

// AtDetail returns a rule bound to a path with additional detail.
func AtDetail(kind Kind, path, detail string) Rule {
	return Rule{Kind: kind, Path: path, Detail: detail}
}

// Phase reports which verification stage owns this kind of rule.
func (k Kind) Phase() Phase {
	switch k {
	case SceneNotSupported, LossyMasterNeedsApproval, LossyWebNeedsApproval, NoTranscodeFormats:
		return PhasePolicy
	case HashMismatch:
		return PhaseHash
	default:
		return PhaseFiles
	}
}

func (r Rule) String() string {
	var b strings.Builder
	switch r.Kind {
	case SceneNotSupported:
		b.WriteString("scene releases are not supported")
	case LossyMasterNeedsApproval:
		b.WriteString("lossy master requires approval before transcoding")
	case LossyWebNeedsApproval:
		b.WriteString("lossy web release requires approval before transcoding")
	case NoTranscodeFormats:
		b.WriteString("no eligible transcode formats remain for this source")
	case SourceDirectoryNotFound:
		b.WriteString("source directory not found")
	case NoFlacFiles:
		b.WriteString("no FLAC files found in source directory")
	case PathTooLong:
		b.WriteString("transcode path would exceed the path length limit")
	case MissingArtist:
		b.WriteString("artist tag is missing")
	case MissingAlbum:
		b.WriteString("album tag is missing")
	case MissingTitle:
		b.WriteString("title tag is missing")
	case MissingTrackNumber:
		b.WriteString("track number tag is missing")
	case ArtistMismatch:
		b.WriteString("artist tag does not match the release")
	case AlbumMismatch:
		b.WriteString("album tag does not match the release")
	case YearMismatch:
		b.WriteString("year tag does not match the release")
	case TitleMismatch:
		b.WriteString("title tag does not match the release track listing")
	case TrackNumberMismatch:
		b.WriteString("track number is not part of the release track listing")
	case BrokenStream:
		b.WriteString("FLAC stream could not be decoded")
	case StreamHashMismatch:
		b.WriteString("decoded audio does not match the stream MD5 signature")
	case TooManyChannels:
		b.WriteString("more than two audio channels")
	case UnsupportedSampleRate:
		b.WriteString("unsupported sample rate")
	case HashMismatch:
		b.WriteString("on-disk content does not match the reference torrent")
	default:
		b.WriteString(fmt.Sprintf("unknown rule kind %d", int(r.Kind)))
	}
	if r.Path != "" {
		b.WriteString(": ")
		b.WriteString(r.Path)
	}
	if r.Detail != "" {
		b.WriteString(" (")
		b.WriteString(r.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Contains reports whether any rule in the slice has the given kind.
func Contains(list []Rule, kind Kind) bool {
	for _, rule := range list {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}
