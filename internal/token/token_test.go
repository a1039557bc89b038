package token_test

import (
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	reserved := map[string]token.Kind{
		"class": token.KwClass, "typeof": token.KwTypeof, "null": token.KwNull,
		"instanceof": token.KwInstanceof, "void": token.KwVoid,
	}
	for word, want := range reserved {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", word, got, ok, want)
		}
	}
	for _, word := range []string{"type", "opaque", "declare", "let", "async", "of", "Class"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must stay an identifier", word)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !token.KwWith.IsKeyword() || token.Ident.IsKeyword() || token.LBrace.IsKeyword() {
		t.Fatal("IsKeyword mismatch")
	}
	for _, k := range []token.Kind{token.Assign, token.QuestionQuestionAssign, token.ShlAssign} {
		if !k.IsAssign() {
			t.Fatalf("%v should be an assignment operator", k)
		}
	}
	if token.EqEq.IsAssign() {
		t.Fatal("== is not an assignment")
	}
	if token.KwTypeof.String() != "typeof" || token.QuestionDot.String() != "?." {
		t.Fatalf("String: %q %q", token.KwTypeof.String(), token.QuestionDot.String())
	}
}

func TestTokenHelpers(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Text: "type"}
	if !tok.IsWord("type") || tok.IsWord("opaque") {
		t.Fatal("IsWord mismatch")
	}
	kw := token.Token{Kind: token.KwDefault, Text: "default"}
	if !kw.IsName() {
		t.Fatal("reserved words are valid property names")
	}
}
