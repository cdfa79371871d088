// Package source models one release under verification: the local directory
// holding its FLAC files plus the tracker metadata describing what those
// files are expected to contain.
//
// Sources are owned by the caller for the duration of one verification run
// and are read-only to the engine.
package source
