// Package naming proposes shorter track and album names when a source's
// transcode paths would exceed the path length limit.
//
// Suggestions are purely advisory log output; nothing here renames files or
// changes a verification verdict.
package naming
