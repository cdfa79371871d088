// Package imdl verifies on-disk release content against a torrent descriptor
// using the intermodal (imdl) command line tool.
package imdl
