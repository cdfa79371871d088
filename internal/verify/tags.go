package verify

import (
	"fmt"

	"crescendo/internal/flacfile"
	"crescendo/internal/rules"
	"crescendo/internal/source"
)

// TagVerifier compares one file's embedded tags against the release's
// expectations.
type TagVerifier struct{}

// Check returns one rule per missing or mismatched tag field.
func (TagVerifier) Check(info flacfile.Info, release source.Release) []rules.Rule {
	var found []rules.Rule
	tags := info.Tags

	switch {
	case tags.Artist == "":
		found = append(found, rules.At(rules.MissingArtist, info.Path))
	case release.Artist != "" && tags.Artist != release.Artist:
		found = append(found, rules.AtDetail(rules.ArtistMismatch, info.Path,
			mismatch(tags.Artist, release.Artist)))
	}

	switch {
	case tags.Album == "":
		found = append(found, rules.At(rules.MissingAlbum, info.Path))
	case release.Album != "" && tags.Album != release.Album:
		found = append(found, rules.AtDetail(rules.AlbumMismatch, info.Path,
			mismatch(tags.Album, release.Album)))
	}

	if tags.Title == "" {
		found = append(found, rules.At(rules.MissingTitle, info.Path))
	}

	if tags.Track == 0 {
		found = append(found, rules.At(rules.MissingTrackNumber, info.Path))
	} else if len(release.Tracks) > 0 {
		expected, ok := trackByNumber(release.Tracks, tags.Track)
		if !ok {
			found = append(found, rules.AtDetail(rules.TrackNumberMismatch, info.Path,
				fmt.Sprintf("track %d not in listing", tags.Track)))
		} else if tags.Title != "" && expected.Title != "" && tags.Title != expected.Title {
			found = append(found, rules.AtDetail(rules.TitleMismatch, info.Path,
				mismatch(tags.Title, expected.Title)))
		}
	}

	if tags.Year != 0 && release.Year != 0 && tags.Year != release.Year {
		found = append(found, rules.AtDetail(rules.YearMismatch, info.Path,
			mismatch(fmt.Sprint(tags.Year), fmt.Sprint(release.Year))))
	}

	return found
}

func trackByNumber(tracks []source.Track, number int) (source.Track, bool) {
	for _, track := range tracks {
		if track.Number == number {
			return track, true
		}
	}
	return source.Track{}, false
}

func mismatch(got, want string) string {
	return fmt.Sprintf("got %q, want %q", got, want)
}
