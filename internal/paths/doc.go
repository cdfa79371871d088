// Package paths computes the filesystem paths transcodes of a source would
// occupy and enforces the path length limit shared torrent clients tolerate.
package paths
