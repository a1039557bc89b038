package flowts_test

import (
	"errors"
	"strings"
	"testing"

	flowts "github.com/lukeapage/flow-to-ts"
)

func TestConvert(t *testing.T) {
	res, err := flowts.Convert("type A = ?string;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "type A = string | null | undefined;"; res.Code != want || res.Eligible || res.Skip {
		t.Fatalf("got %+v, want code %q", res, want)
	}

	res, err = flowts.Convert("// @flow\nconst a = 1;", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Eligible || strings.Contains(res.Code, "@flow") {
		t.Fatalf("got %+v", res)
	}
}

func TestConvertSkip(t *testing.T) {
	res, err := flowts.Convert("const a = 1;\n", &flowts.Options{SkipNonFlow: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skip || res.Code != "" {
		t.Fatalf("got %+v", res)
	}
}

func TestConvertFormat(t *testing.T) {
	semi := false
	res, err := flowts.Convert("const a: string = \"x\";\n", &flowts.Options{
		Format: &flowts.FormatOptions{Semi: &semi},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.Code, ";") {
		t.Fatalf("semicolon kept: %q", res.Code)
	}
}

func TestConvertParseError(t *testing.T) {
	_, err := flowts.Convert("const = ;", nil)
	var perr *flowts.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestConvertRejectsInvalidPrograms(t *testing.T) {
	for _, src := range []string{
		"const a;",
		"({a = 1});",
		"a?.b = 1;",
		"return 1;",
		"break;",
		"label: label: x;",
	} {
		res, err := flowts.Convert("// @flow\n"+src, nil)
		var perr *flowts.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%q: err = %v, want *ParseError", src, err)
		}
		if res.Code != "" {
			t.Fatalf("%q: produced %q", src, res.Code)
		}
	}
}
