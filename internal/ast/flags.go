package ast

import "strings"

// Flags carry boolean attributes of a node. The meaning of each flag is
// listed next to the kinds that use it.
type Flags uint32

const (
	FlagOptional Flags = 1 << iota
	FlagComputed
	FlagShorthand
	FlagStatic
	FlagAsync
	FlagGenerator
	FlagDeclare
	FlagDelegate
	FlagAwait
	FlagPrefix
	FlagExact
	FlagInexact
	FlagCovariant
	FlagContravariant
	FlagReadonly
	FlagMethod
	FlagSelfClosing
	FlagExprBody
	FlagParenParams
	FlagDirective
	FlagDefault
	FlagConstructor
	FlagNoArgs
	FlagParenthesized
	FlagSynthetic
)

var flagNames = [...]string{
	"optional", "computed", "shorthand", "static", "async", "generator",
	"declare", "delegate", "await", "prefix", "exact", "inexact",
	"covariant", "contravariant", "readonly", "method", "selfClosing",
	"exprBody", "parenParams", "directive", "default", "constructor",
	"noArgs", "parenthesized", "synthetic",
}

func (f Flags) Has(x Flags) bool { return f&x == x }

func (f Flags) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
