package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a character the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of input. It carries the trailing comments of the file.
	EOF

	Ident
	// Lifetime is a quote-prefixed label or lifetime such as 'a or 'static.
	Lifetime

	// strict keywords
	KwAs
	KwAsync
	KwAwait
	KwBreak
	KwConst
	KwContinue
	KwCrate
	KwDyn
	KwElse
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwImpl
	KwIn
	KwLet
	KwLoop
	KwMatch
	KwMod
	KwMove
	KwMut
	KwPub
	KwRef
	KwReturn
	KwSelfValue // self
	KwSelfType  // Self
	KwStatic
	KwStruct
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere
	KwWhile

	IntLit
	FloatLit
	// StringLit covers plain, raw, byte and C strings.
	StringLit
	// CharLit covers char and byte literals.
	CharLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Caret     // ^
	Bang      // !
	Amp       // &
	Pipe      // |
	AndAnd    // &&
	OrOr      // ||
	Shl       // <<
	Shr       // >>
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=
	CaretEq   // ^=
	AmpEq     // &=
	PipeEq    // |=
	ShlEq     // <<=
	ShrEq     // >>=
	Eq        // =
	EqEq      // ==
	Ne        // !=
	Gt        // >
	Lt        // <
	Ge        // >=
	Le        // <=
	At        // @
	Underscore
	Dot       // .
	DotDot    // ..
	DotDotDot // ...
	DotDotEq  // ..=
	Comma     // ,
	Semi      // ;
	Colon     // :
	PathSep   // ::
	RArrow    // ->
	FatArrow  // =>
	Pound     // #
	Dollar    // $
	Question  // ?
	Tilde     // ~

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	// verification operators
	Implies // ==>
	Explies // <==
	Equiv   // <==>
	EqEqEq  // ===
	NeEqEq  // !==
	BigAnd  // &&&
	BigOr   // |||
	ExtEq   // =~=
	ExtEqEq // =~~=
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Lifetime:  "Lifetime",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	CharLit:   "CharLit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := fixedText[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a strict keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwAs && k <= KwWhile
}

func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	}
	return false
}

// IsOpenDelim reports whether k opens a delimited group.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBrace || k == LBracket
}

func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closing returns the delimiter that closes k, or Invalid.
func (k Kind) Closing() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return Invalid
}

// IsAssignOp reports plain and compound assignment operators.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Eq, PlusEq, MinusEq, StarEq, SlashEq, PercentEq, CaretEq, AmpEq, PipeEq, ShlEq, ShrEq:
		return true
	}
	return false
}
