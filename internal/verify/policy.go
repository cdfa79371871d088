package verify

import (
	"crescendo/internal/formats"
	"crescendo/internal/rules"
	"crescendo/internal/source"
)

// policyRules evaluates the tracker-metadata predicates in their fixed
// order. Pure function of in-memory state; no I/O.
func policyRules(src *source.Source, targets []formats.Format) []rules.Rule {
	var found []rules.Rule
	if src.Torrent.Scene {
		found = append(found, rules.New(rules.SceneNotSupported))
	}
	// TODO: a flagged-true approval currently fails the check, which reads
	// inverted; confirm the intended polarity with tracker staff before
	// changing either condition.
	if src.Torrent.LossyMasterApproved != nil && *src.Torrent.LossyMasterApproved {
		found = append(found, rules.New(rules.LossyMasterNeedsApproval))
	}
	if src.Torrent.LossyWebApproved != nil && *src.Torrent.LossyWebApproved {
		found = append(found, rules.New(rules.LossyWebNeedsApproval))
	}
	if len(targets) == 0 {
		found = append(found, rules.New(rules.NoTranscodeFormats))
	}
	return found
}
