// Package flacfile reads the stream properties and embedded tags of a single
// FLAC file and can run a full-decode integrity pass.
//
// Open failures are hard errors; a file that cannot be opened cannot be
// scored. A file that opens but does not parse as FLAC is reported through
// Info.Broken so the stream verifier can turn it into a finding.
package flacfile
