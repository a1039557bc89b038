// Package diag defines the diagnostic model and the error taxonomy shared by
// all conversion phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error; fixed per code (Code.Severity in codes.go).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The lexer and
// parser construct a ReportBuilder via ReportError and call Emit. BagReporter
// aggregates into a Bag; FirstErrorReporter keeps the first error only.
//
// # Errors
//
// A conversion fails with exactly one of ParseError, UnsupportedError or
// ConfigError (errors.go). Each implements Diagnoser so the CLI can render
// it through internal/diagfmt with a source preview. Skipping a file that
// lacks the @flow marker is not an error and has no type here.
//
// Package diag does not perform any formatting or IO; rendering lives in
// internal/diagfmt.
package diag
