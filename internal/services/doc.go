// Package services carries the hard-error taxonomy and context helpers
// shared by crescendo's external collaborators (tracker API, torrent
// verifier, file inspection).
//
// Hard errors terminate a verification run without a verdict; they are
// distinct from verification rules, which are findings about the source and
// never abort the run.
package services
