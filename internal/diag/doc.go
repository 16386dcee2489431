// Package diag defines the diagnostic model shared by the lexer, parser,
// formatter and driver.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string ID
// (LEX1001, SYN2001, FMT3001, IO4001, CFG5001), a short message, the primary
// source.Span and optional notes. Producers emit through a Reporter so that
// storage (Bag, BagReporter) and rendering (internal/diagfmt, FormatShort)
// stay decoupled from the phases.
//
// Parse failures stop formatting of a file; delegation problems are
// reported as warnings and never change the formatted output.
package diag
