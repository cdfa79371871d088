package verify

import (
	"fmt"

	"crescendo/internal/flacfile"
	"crescendo/internal/rules"
)

// supportedSampleRates are the rates the transcode pipeline accepts.
var supportedSampleRates = map[int]struct{}{
	44100:  {},
	48000:  {},
	88200:  {},
	96000:  {},
	176400: {},
	192000: {},
}

// StreamVerifier inspects one file's FLAC stream for structural integrity.
type StreamVerifier struct{}

// Check returns one rule per corruption class found in the stream. A stream
// that did not parse at all yields only BrokenStream; the remaining checks
// would be meaningless.
func (StreamVerifier) Check(info flacfile.Info) []rules.Rule {
	if info.Broken {
		return []rules.Rule{rules.At(rules.BrokenStream, info.Path)}
	}
	var found []rules.Rule
	if info.DecodeChecked && !info.MD5Match {
		found = append(found, rules.At(rules.StreamHashMismatch, info.Path))
	}
	if info.Channels > 2 {
		found = append(found, rules.AtDetail(rules.TooManyChannels, info.Path,
			fmt.Sprintf("%d channels", info.Channels)))
	}
	if _, ok := supportedSampleRates[info.SampleRate]; !ok {
		found = append(found, rules.AtDetail(rules.UnsupportedSampleRate, info.Path,
			fmt.Sprintf("%d Hz", info.SampleRate)))
	}
	return found
}
