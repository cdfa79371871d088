// Package verify decides whether a source is eligible for transcoding.
//
// The engine runs three strictly ordered phases (policy, file content,
// hash) and aggregates their findings into one verdict. No phase is skipped
// because an earlier one failed: an operator gets every fixable problem from
// a single run. The only legitimate gaps are the file-content short-circuits
// (missing directory, no FLAC files) and an explicitly configured hash-check
// skip. Infrastructure failures abort the run with a hard error and no
// verdict.
package verify
