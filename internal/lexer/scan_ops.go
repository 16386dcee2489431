package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Longest spellings first so matching is greedy:
// "<==>" beats "<==", which beats "<=", which beats "<".
var multiCharOps = []opSpelling{
	{"<==>", token.Equiv},
	{"=~~=", token.ExtEqEq},

	{"..=", token.DotDotEq},
	{"...", token.DotDotDot},
	{"<<=", token.ShlEq},
	{">>=", token.ShrEq},
	{"==>", token.Implies},
	{"<==", token.Explies},
	{"===", token.EqEqEq},
	{"!==", token.NeEqEq},
	{"&&&", token.BigAnd},
	{"|||", token.BigOr},
	{"=~=", token.ExtEq},

	{"..", token.DotDot},
	{"::", token.PathSep},
	{"->", token.RArrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.Ne},
	{"<=", token.Le},
	{">=", token.Ge},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusEq},
	{"-=", token.MinusEq},
	{"*=", token.StarEq},
	{"/=", token.SlashEq},
	{"%=", token.PercentEq},
	{"^=", token.CaretEq},
	{"&=", token.AmpEq},
	{"|=", token.PipeEq},
}

var singleCharOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'!': token.Bang,
	'&': token.Amp,
	'|': token.Pipe,
	'=': token.Eq,
	'<': token.Lt,
	'>': token.Gt,
	'@': token.At,
	'.': token.Dot,
	',': token.Comma,
	';': token.Semi,
	':': token.Colon,
	'#': token.Pound,
	'$': token.Dollar,
	'?': token.Question,
	'~': token.Tilde,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range multiCharOps {
		if lx.cursor.HasPrefix(op.text) {
			lx.cursor.BumpN(len(op.text))
			return lx.emit(lx.cursor.SpanFrom(start), op.kind)
		}
	}

	ch := lx.cursor.Bump()
	if k := singleCharOps[ch]; k != token.Invalid {
		return lx.emit(lx.cursor.SpanFrom(start), k)
	}
	return lx.invalid(start, diag.LexUnknownChar, "unknown character")
}
