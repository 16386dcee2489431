package token

var keywords = map[string]Kind{
	"as":       KwAs,
	"async":    KwAsync,
	"await":    KwAwait,
	"break":    KwBreak,
	"const":    KwConst,
	"continue": KwContinue,
	"crate":    KwCrate,
	"dyn":      KwDyn,
	"else":     KwElse,
	"enum":     KwEnum,
	"extern":   KwExtern,
	"false":    KwFalse,
	"fn":       KwFn,
	"for":      KwFor,
	"if":       KwIf,
	"impl":     KwImpl,
	"in":       KwIn,
	"let":      KwLet,
	"loop":     KwLoop,
	"match":    KwMatch,
	"mod":      KwMod,
	"move":     KwMove,
	"mut":      KwMut,
	"pub":      KwPub,
	"ref":      KwRef,
	"return":   KwReturn,
	"self":     KwSelfValue,
	"Self":     KwSelfType,
	"static":   KwStatic,
	"struct":   KwStruct,
	"super":    KwSuper,
	"trait":    KwTrait,
	"true":     KwTrue,
	"type":     KwType,
	"unsafe":   KwUnsafe,
	"use":      KwUse,
	"where":    KwWhere,
	"while":    KwWhile,
}

// fixedText maps keyword and punctuation kinds to their only spelling.
var fixedText = func() map[Kind]string {
	m := map[Kind]string{
		Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^",
		Bang: "!", Amp: "&", Pipe: "|", AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>",
		PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
		CaretEq: "^=", AmpEq: "&=", PipeEq: "|=", ShlEq: "<<=", ShrEq: ">>=",
		Eq: "=", EqEq: "==", Ne: "!=", Gt: ">", Lt: "<", Ge: ">=", Le: "<=",
		At: "@", Underscore: "_", Dot: ".", DotDot: "..", DotDotDot: "...", DotDotEq: "..=",
		Comma: ",", Semi: ";", Colon: ":", PathSep: "::", RArrow: "->", FatArrow: "=>",
		Pound: "#", Dollar: "$", Question: "?", Tilde: "~",
		LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
		Implies: "==>", Explies: "<==", Equiv: "<==>", EqEqEq: "===", NeEqEq: "!==",
		BigAnd: "&&&", BigOr: "|||", ExtEq: "=~=", ExtEqEq: "=~~=",
	}
	for text, k := range keywords {
		m[k] = text
	}
	return m
}()

// LookupKeyword reports the strict keyword spelled by ident.
// Verification words (requires, ensures, spec, proof, ...) are contextual
// and stay identifiers.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Text returns the fixed spelling of k, or "" for kinds with variable text.
func Text(k Kind) string {
	return fixedText[k]
}
