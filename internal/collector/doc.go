// Package collector enumerates the audio files belonging to a source
// directory in a stable order.
package collector
