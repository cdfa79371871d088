package naming

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"crescendo/internal/source"
)

// maxSuggestedTrack and maxSuggestedAlbum bound the proposed names. The
// track bound leaves room for a track number prefix and a format extension
// inside the overall path limit.
const (
	maxSuggestedTrack = 60
	maxSuggestedAlbum = 70
)

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Shortener emits advisory naming suggestions through the provided logger.
type Shortener struct {
	logger *slog.Logger
}

// NewShortener builds a shortener. A nil logger falls back to slog.Default.
func NewShortener(logger *slog.Logger) *Shortener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shortener{logger: logger.With("component", "shortener")}
}

// SuggestTrack proposes a shortened name for one overflowing track file.
func (s *Shortener) SuggestTrack(flacPath string) {
	base := filepath.Base(flacPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	shortened := Shorten(stem, maxSuggestedTrack)
	if shortened == stem {
		return
	}
	s.logger.Info("consider shortening track name",
		"file", base,
		"suggestion", shortened+filepath.Ext(base))
}

// SuggestAlbum proposes a shortened album title for the whole release. Call
// at most once per verification run.
func (s *Shortener) SuggestAlbum(src *source.Source) {
	album := src.Release.Album
	if album == "" {
		return
	}
	shortened := Shorten(album, maxSuggestedAlbum)
	if shortened == album {
		return
	}
	s.logger.Info("consider shortening album name",
		"album", album,
		"suggestion", shortened)
}

// Shorten folds diacritics, drops trailing bracketed qualifiers, and trims
// the result to limit runes on a word boundary where possible.
func Shorten(name string, limit int) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	folded = strings.TrimSpace(dropBracketedSuffix(folded))
	if len([]rune(folded)) <= limit {
		return folded
	}
	runes := []rune(folded)
	cut := string(runes[:limit])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > limit/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(strings.TrimSpace(cut), "-,.")
}

// dropBracketedSuffix removes trailing parenthesized or bracketed qualifiers
// such as "(Deluxe Edition)" or "[2014 Remaster]".
func dropBracketedSuffix(name string) string {
	trimmed := strings.TrimSpace(name)
	for {
		if strings.HasSuffix(trimmed, ")") {
			if open := strings.LastIndex(trimmed, "("); open > 0 {
				trimmed = strings.TrimSpace(trimmed[:open])
				continue
			}
		}
		if strings.HasSuffix(trimmed, "]") {
			if open := strings.LastIndex(trimmed, "["); open > 0 {
				trimmed = strings.TrimSpace(trimmed[:open])
				continue
			}
		}
		return trimmed
	}
}
