// Package watch monitors a drop directory for newly completed release
// folders and hands settled paths to a handler. A path is considered
// settled once no filesystem events have touched it for the configured
// settle window, which keeps half-copied releases out of verification.
package watch
