// Command crescendo verifies lossless releases against tracker policy,
// file-level content rules, and the reference torrent descriptor before
// they are handed to a transcode pipeline.
package main
