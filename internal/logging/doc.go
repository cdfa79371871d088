// Package logging builds the slog loggers used across crescendo. It
// offers a human-oriented console handler with optional color and a
// machine-oriented JSON handler, selected through configuration.
package logging
