package diag

import (
	"errors"
	"fmt"

	"github.com/lukeapage/flow-to-ts/internal/source"
)

// Error taxonomy of a single conversion. Every failure aborts the whole
// file; none of these carry partial output.

// ParseError reports source text that does not match the grammar.
type ParseError struct {
	Path string
	Span source.Span
	Pos  source.LineCol
	Code Code
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s", position(e.Path, e.Pos), e.Msg)
}

// Diagnostic converts the error for rendering.
func (e *ParseError) Diagnostic() Diagnostic {
	code := e.Code
	if code == UnknownCode {
		code = SynUnexpectedToken
	}
	return NewError(code, e.Span, e.Msg)
}

// UnsupportedError reports a node whose shape the converter cannot handle.
type UnsupportedError struct {
	Path string
	Span source.Span
	Pos  source.LineCol
	Kind string // node kind name
	Code Code
	Msg  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported %s: %s", position(e.Path, e.Pos), e.Kind, e.Msg)
}

func (e *UnsupportedError) Diagnostic() Diagnostic {
	code := e.Code
	if code == UnknownCode {
		code = TrnUnsupported
	}
	return NewError(code, e.Span, e.Kind+": "+e.Msg)
}

// ConfigError reports a style configuration that cannot be loaded.
type ConfigError struct {
	Path string
	Code Code
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("style config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Diagnostic() Diagnostic {
	code := e.Code
	if code == UnknownCode {
		code = CfgUnreadable
	}
	return NewError(code, source.Span{}, e.Error())
}

// Diagnoser is implemented by errors that can be rendered as diagnostics.
type Diagnoser interface {
	error
	Diagnostic() Diagnostic
}

// AsDiagnostic extracts a diagnostic from err if any error in its chain carries one.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var d Diagnoser
	if errors.As(err, &d) {
		return d.Diagnostic(), true
	}
	return Diagnostic{}, false
}

func position(path string, pos source.LineCol) string {
	return source.Position{Path: path, LineCol: pos}.String()
}
