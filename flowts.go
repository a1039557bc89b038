// Package flowts converts Flow-annotated JavaScript to TypeScript.
//
//	res, err := flowts.Convert(src, &flowts.Options{SkipNonFlow: true})
//
// Failures are *ParseError, *UnsupportedError or *ConfigError; a file
// without an @flow comment under SkipNonFlow is Result.Skip, not an error.
package flowts

import (
	"context"
	"io"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/diag"
)

type (
	// Result of a conversion.
	Result = convert.Result
	// FormatOptions requests reformatting. Nil fields keep the value from
	// ConfigPath or the default.
	FormatOptions = config.FormatRequest

	ParseError       = diag.ParseError
	UnsupportedError = diag.UnsupportedError
	ConfigError      = diag.ConfigError
)

// Options of a conversion. A nil *Options converts with the defaults.
type Options struct {
	SkipNonFlow        bool
	InlineUtilityTypes bool
	// Debug dumps the rewritten tree as JSON to DebugOut (stderr when nil).
	Debug    bool
	DebugOut io.Writer
	// Format, when set, reformats the output.
	Format *FormatOptions
}

// Convert translates Flow source to TypeScript.
func Convert(source string, opts *Options) (Result, error) {
	return ConvertContext(context.Background(), source, opts)
}

// ConvertContext is Convert with a context; a tracer attached to ctx
// receives the phase spans.
func ConvertContext(ctx context.Context, source string, opts *Options) (Result, error) {
	var copts convert.Options
	if opts != nil {
		copts = convert.Options{
			SkipNonFlow:        opts.SkipNonFlow,
			InlineUtilityTypes: opts.InlineUtilityTypes,
			Debug:              opts.Debug,
			DebugOut:           opts.DebugOut,
			Format:             opts.Format,
		}
	}
	return convert.Convert(ctx, []byte(source), &copts)
}
