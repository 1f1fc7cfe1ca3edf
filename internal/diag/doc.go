// Package diag carries structured diagnostics for strlint.
//
// A Diagnostic is data, not control flow: the escape-policy checker
// reports style non-conformance through this package while returning
// normally. Severity, a stable numeric Code, a primary Span, optional
// Notes and suggested Fixes travel together so renderers (pretty,
// JSON, SARIF) and the fix engine all work from the same record.
//
// Bag accumulates diagnostics up to a cap with deterministic Sort and
// Dedup; Reporter is the minimal producer contract handed to phases.
package diag
