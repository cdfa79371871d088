// Package tracker is a client for the Gazelle-style JSON API crescendo
// verifies sources against.
//
// It fetches torrent metadata (used to build the Source under verification)
// and downloads torrent descriptors for the hash check. Requests are
// rate-limited client side; how the tracker authenticates beyond a static
// API key header is out of scope.
package tracker
