// Package formats models source and transcode target encodings and computes
// which targets a source is still eligible to fill.
package formats
