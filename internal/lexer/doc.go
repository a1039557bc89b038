// Package lexer turns JavaScript source with Flow or TypeScript types and
// JSX into tokens.
//
// The lexer is context-free; the parser resolves the context-dependent
// lexical grammar by asking for a rescan of the current token:
//
//   - RescanRegex when a '/' appears where an operand is expected;
//   - RescanTemplateContinuation for the '}' closing a template substitution;
//   - ScanJSXChild, RescanJSXIdent, RescanJSXString inside JSX.
//
// Errors are deferred: an Invalid token carries its message until the parser
// consumes it (ReportInvalid), which keeps speculative lookahead free of
// spurious diagnostics. Save/Restore support the parser's backtracking.
package lexer
