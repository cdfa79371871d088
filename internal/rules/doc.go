// Package rules defines the closed set of verification findings crescendo
// can report against a source.
//
// A Rule is pure data: a Kind plus the minimal context needed to render a
// human-readable diagnostic (typically the offending path). A source is
// verified exactly when its rule list is empty; rules explain rejection, they
// never abort a run. Extend the taxonomy by adding kinds only; reporting
// sites switch exhaustively over Kind so new variants force review there.
package rules
