package paths

import (
	"path/filepath"
	"strings"

	"crescendo/internal/formats"
	"crescendo/internal/source"
)

// MaxLength is the longest transcode sub-path accepted before a source is
// flagged. 180 characters is the limit common torrent clients still handle
// reliably on every platform they support.
const MaxLength = 180

// TranscodeSubPath renders the path one file of a transcode would occupy
// under the release root: the canonical release folder for the target format
// followed by the file's position inside the source, with the extension
// swapped to the target's.
func TranscodeSubPath(src *source.Source, flacPath string, target formats.Format) string {
	rel, err := filepath.Rel(src.Directory, flacPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(flacPath)
	}
	ext := filepath.Ext(rel)
	rel = strings.TrimSuffix(rel, ext) + target.Extension()
	return filepath.Join(src.FolderName(target), rel)
}

// MaxTranscodeSubPath returns the longest sub-path any of the candidate
// targets would produce for the file. The result is empty when no targets
// are supplied.
func MaxTranscodeSubPath(src *source.Source, flacPath string, targets []formats.Format) string {
	longest := ""
	for _, target := range targets {
		candidate := TranscodeSubPath(src, flacPath, target)
		if len(candidate) > len(longest) {
			longest = candidate
		}
	}
	return longest
}
