package journal

import (
	"time"

	"crescendo/internal/rules"
)

// Run is one recorded verification outcome.
type Run struct {
	RunID       string
	TorrentID   int64
	ReleaseName string
	Verified    bool
	SkipHash    bool
	Rules       []rules.Rule
	CreatedAt   time.Time
}
