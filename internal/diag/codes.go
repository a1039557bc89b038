package diag

import (
	"fmt"
)

// Code identifies a diagnostic. The thousands digit is the class: lexical,
// syntax, transform, configuration and I/O, verification.
type Code uint16

// Severity ranks a diagnostic. It follows from the code, see Code.Severity.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006
	LexBadEscape                Code = 1007

	// Парсерные
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectType        Code = 2005
	SynBadAssignTarget   Code = 2006
	SynUnclosedJSX       Code = 2007
	SynMismatchedJSXTag  Code = 2008
	SynBadArrowParams    Code = 2009
	SynNotInDialect      Code = 2010
	SynDuplicateModifier Code = 2011
	SynMissingInit       Code = 2012
	SynIllegalJump       Code = 2013
	SynDuplicateLabel    Code = 2014
	SynCoverInit         Code = 2015

	// Трансформация
	TrnUnsupported    Code = 3001
	TrnMalformedNode  Code = 3002
	TrnUntranslated   Code = 3003
	TrnLostComment    Code = 3004
	TrnDegradedSyntax Code = 3005

	// Конфигурация и ввод-вывод
	CfgUnreadable   Code = 4001
	CfgMalformed    Code = 4002
	CfgBadValue     Code = 4003
	IOReadFailed    Code = 4101
	IOWriteFailed   Code = 4102
	VerifyBadOutput Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed number literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegex:        "Unterminated regular expression",
		LexBadEscape:                "Malformed escape sequence",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Missing semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectType:               "Expected type",
		SynBadAssignTarget:          "Invalid assignment target",
		SynUnclosedJSX:              "Unclosed JSX element",
		SynMismatchedJSXTag:         "Mismatched JSX closing tag",
		SynBadArrowParams:           "Invalid arrow function parameters",
		SynNotInDialect:             "Syntax not available in this dialect",
		SynDuplicateModifier:        "Duplicate modifier",
		SynMissingInit:              "Missing initializer in const declaration",
		SynIllegalJump:              "Jump statement outside its target",
		SynDuplicateLabel:           "Duplicate label",
		SynCoverInit:                "Shorthand property initializer outside a pattern",
		TrnUnsupported:              "Unsupported construct",
		TrnMalformedNode:            "Malformed syntax node",
		TrnUntranslated:             "Untranslated source-dialect node",
		TrnLostComment:              "Comment could not be reattached",
		TrnDegradedSyntax:           "Construct converted to a best-effort analogue",
		CfgUnreadable:               "Style configuration cannot be read",
		CfgMalformed:                "Style configuration is malformed",
		CfgBadValue:                 "Invalid style configuration value",
		IOReadFailed:                "Failed to read file",
		IOWriteFailed:               "Failed to write file",
		VerifyBadOutput:             "Generated TypeScript does not parse",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("VRF%04d", ic)
	}
	return "E0000"
}

// Severity is SevError except for the transform codes that describe output
// which was still produced: a comment put elsewhere, a best-effort analogue.
func (c Code) Severity() Severity {
	switch c {
	case TrnLostComment, TrnDegradedSyntax:
		return SevWarning
	}
	return SevError
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
