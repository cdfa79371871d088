package tracker

import (
	"fmt"
	"path/filepath"
	"strings"

	"crescendo/internal/formats"
	"crescendo/internal/source"
)

// GroupResponse is the payload of a torrent group fetch, including every
// torrent edition the group already holds.
type GroupResponse struct {
	Group    Group     `json:"group"`
	Torrents []Torrent `json:"torrents"`
}

// ReleaseFormat maps a tracker format/encoding pair onto a crescendo format.
func ReleaseFormat(format, encoding string) (formats.Format, error) {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "FLAC":
		if strings.Contains(strings.ToLower(encoding), "24") {
			return formats.FLAC24, nil
		}
		return formats.FLAC16, nil
	case "MP3":
		switch strings.ToUpper(strings.TrimSpace(encoding)) {
		case "320":
			return formats.MP3320, nil
		case "V0 (VBR)", "V0":
			return formats.MP3V0, nil
		}
	}
	return "", fmt.Errorf("unsupported tracker format %q / %q", format, encoding)
}

// ExistingFormats derives the format set a release group already carries
// from its sibling torrents. Unrecognized formats are ignored; they cannot
// collide with anything crescendo would produce.
func ExistingFormats(siblings []Torrent, self Torrent) formats.Set {
	existing := formats.NewSet()
	for _, sibling := range siblings {
		if sibling.ID == self.ID {
			continue
		}
		if sibling.Media != self.Media || sibling.RemasterTitle != self.RemasterTitle || sibling.RemasterYear != self.RemasterYear {
			continue
		}
		format, err := ReleaseFormat(sibling.Format, sibling.Encoding)
		if err != nil {
			continue
		}
		existing[format] = struct{}{}
	}
	return existing
}

// BuildSource assembles the Source under verification from tracker metadata.
// contentRoot is the local directory torrents are downloaded into; siblings
// may be nil when the group listing is unavailable.
func BuildSource(resp *TorrentResponse, siblings []Torrent, contentRoot string) (*source.Source, error) {
	format, err := ReleaseFormat(resp.Torrent.Format, resp.Torrent.Encoding)
	if err != nil {
		return nil, err
	}
	if !format.Lossless() {
		return nil, fmt.Errorf("torrent %d is %s, not a lossless source", resp.Torrent.ID, format)
	}

	artist := ""
	if len(resp.Group.MusicInfo.Artists) == 1 {
		artist = resp.Group.MusicInfo.Artists[0].Name
	} else if len(resp.Group.MusicInfo.Artists) > 1 {
		artist = "Various Artists"
	}

	year := resp.Group.Year
	if resp.Torrent.RemasterYear > 0 {
		year = resp.Torrent.RemasterYear
	}

	return &source.Source{
		Directory: filepath.Join(contentRoot, resp.Torrent.FilePath),
		Format:    format,
		Existing:  ExistingFormats(siblings, resp.Torrent),
		Torrent: source.Torrent{
			ID:                  resp.Torrent.ID,
			Scene:               resp.Torrent.Scene,
			LossyMasterApproved: resp.Torrent.LossyMasterApproved,
			LossyWebApproved:    resp.Torrent.LossyWebApproved,
		},
		Release: source.Release{
			Artist: artist,
			Album:  resp.Group.Name,
			Year:   year,
		},
	}, nil
}
