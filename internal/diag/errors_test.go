package diag_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/diag"
	"github.com/lukeapage/flow-to-ts/internal/source"
)

func TestParseErrorMessageHasPosition(t *testing.T) {
	err := &diag.ParseError{Path: "a.js", Pos: source.LineCol{Line: 3, Col: 7}, Msg: "unexpected '}'"}
	if got := err.Error(); got != "a.js:3:7: parse error: unexpected '}'" {
		t.Fatalf("Error() = %q", got)
	}
	d := err.Diagnostic()
	if d.Code != diag.SynUnexpectedToken || d.Severity != diag.SevError {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestAsDiagnosticThroughWrapping(t *testing.T) {
	base := &diag.UnsupportedError{Kind: "ObjectTypeInternalSlot", Pos: source.LineCol{Line: 1, Col: 2}, Msg: "no TypeScript equivalent"}
	wrapped := fmt.Errorf("convert x.js: %w", base)

	d, ok := diag.AsDiagnostic(wrapped)
	if !ok {
		t.Fatal("expected diagnostic")
	}
	if d.Code != diag.TrnUnsupported || !strings.Contains(d.Message, "ObjectTypeInternalSlot") {
		t.Fatalf("diagnostic = %+v", d)
	}
	if _, ok := diag.AsDiagnostic(errors.New("plain")); ok {
		t.Fatal("plain errors carry no diagnostic")
	}
}

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("no such file")
	err := &diag.ConfigError{Path: ".prettierrc", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ConfigError must unwrap")
	}
}

func TestBagSortAndFirstError(t *testing.T) {
	bag := diag.NewBag(10)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.SynExpectSemicolon, source.Span{Start: 9, End: 10}, "b").Emit()
	diag.ReportError(r, diag.SynUnexpectedToken, source.Span{Start: 1, End: 2}, "a").Emit()
	bag.Sort()
	if bag.Items()[0].Message != "a" {
		t.Fatalf("sort order: %+v", bag.Items())
	}

	first := &diag.FirstErrorReporter{}
	diag.Report(first, diag.TrnDegradedSyntax, source.Span{}, "w").Emit()
	diag.ReportError(first, diag.SynExpectType, source.Span{}, "one").Emit()
	diag.ReportError(first, diag.SynExpectType, source.Span{}, "two").Emit()
	if first.First == nil || first.First.Message != "one" {
		t.Fatalf("first error = %+v", first.First)
	}
}

func TestCodeSeverity(t *testing.T) {
	tests := []struct {
		code diag.Code
		want diag.Severity
	}{
		{diag.LexUnterminatedRegex, diag.SevError},
		{diag.SynMissingInit, diag.SevError},
		{diag.TrnUnsupported, diag.SevError},
		{diag.TrnLostComment, diag.SevWarning},
		{diag.TrnDegradedSyntax, diag.SevWarning},
		{diag.CfgBadValue, diag.SevError},
		{diag.VerifyBadOutput, diag.SevError},
	}
	for _, tt := range tests {
		if got := tt.code.Severity(); got != tt.want {
			t.Fatalf("%s: severity %v, want %v", tt.code.ID(), got, tt.want)
		}
	}

	bag := diag.NewBag(4)
	diag.Report(diag.BagReporter{Bag: bag}, diag.TrnDegradedSyntax, source.Span{}, "mixins dropped").Emit()
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("degraded construct must be a warning only")
	}
	if s := bag.Items()[0].Severity.String(); s != "WARNING" {
		t.Fatalf("severity name %q", s)
	}
}
