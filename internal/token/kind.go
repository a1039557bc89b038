package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident       // foo
	PrivateName // #foo
	Number      // 1, 0x1f, 1_000, .5e3
	BigInt      // 10n
	String      // 'a', "a"
	Regex       // /a+/g (only after RescanRegex)

	// Template pieces. A template without substitutions is NoSubstTemplate;
	// otherwise TemplateHead, TemplateMiddle*, TemplateTail.
	NoSubstTemplate
	TemplateHead
	TemplateMiddle
	TemplateTail

	JSXText // only after ScanJSXText

	keywordBeg
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	keywordEnd

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	Ellipsis  // ...
	Semicolon // ;
	Comma     // ,
	Colon     // :
	Question  // ?
	QuestionDot
	QuestionQuestion
	FatArrow // =>
	At       // @

	Lt       // <
	Gt       // > (always single)
	LtEq     // <=
	EqEq     // ==
	EqEqEq   // ===
	BangEq   // !=
	BangEqEq // !==
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	PlusPlus
	MinusMinus
	Shl // <<
	Amp
	Pipe
	Caret
	Bang
	Tilde
	AndAnd
	OrOr

	Assign // =
	PlusAssign
	MinusAssign
	StarAssign
	StarStarAssign
	SlashAssign
	PercentAssign
	ShlAssign
	AmpAssign
	PipeAssign
	CaretAssign
	AndAndAssign
	OrOrAssign
	QuestionQuestionAssign

	kindCount
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	PrivateName:            "PrivateName",
	Number:                 "Number",
	BigInt:                 "BigInt",
	String:                 "String",
	Regex:                  "Regex",
	NoSubstTemplate:        "NoSubstTemplate",
	TemplateHead:           "TemplateHead",
	TemplateMiddle:         "TemplateMiddle",
	TemplateTail:           "TemplateTail",
	JSXText:                "JSXText",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	Ellipsis:               "...",
	Semicolon:              ";",
	Comma:                  ",",
	Colon:                  ":",
	Question:               "?",
	QuestionDot:            "?.",
	QuestionQuestion:       "??",
	FatArrow:               "=>",
	At:                     "@",
	Lt:                     "<",
	Gt:                     ">",
	LtEq:                   "<=",
	EqEq:                   "==",
	EqEqEq:                 "===",
	BangEq:                 "!=",
	BangEqEq:               "!==",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	StarStar:               "**",
	Slash:                  "/",
	Percent:                "%",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Bang:                   "!",
	Tilde:                  "~",
	AndAnd:                 "&&",
	OrOr:                   "||",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	StarStarAssign:         "**=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	ShlAssign:              "<<=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordText[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsAssign reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssign() bool { return k >= Assign && k <= QuestionQuestionAssign }

// IsTemplate reports whether k is any template literal piece.
func (k Kind) IsTemplate() bool { return k >= NoSubstTemplate && k <= TemplateTail }
