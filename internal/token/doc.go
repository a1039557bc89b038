// Package token defines lexical token kinds and trivia for JavaScript with
// Flow or TypeScript type syntax and JSX.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments are never part of the main token stream; they are collected
//     as leading Trivia of the next token and in the lexer's comment list.
//   - '>' is always a single Gt token. Shift and comparison operators that
//     start with '>' are assembled by the parser from adjacent tokens, so
//     nested generics like Array<Array<T>> need no rescanning.
//   - Contextual words (type, opaque, declare, async, of, get, set, ...) are
//     identifiers. Only reserved words get their own kinds.
package token
