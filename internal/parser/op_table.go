package parser

import (
	"vfmt/internal/token"
)

// Binary operator precedence; a larger number binds tighter.
const (
	precAssign     = 1  // = += -= ... (right)
	precRange      = 2  // .. ..=
	precBigOr      = 3  // |||
	precBigAnd     = 4  // &&&
	precEquiv      = 5  // <==>
	precImplies    = 6  // ==> (right), <==
	precOr         = 7  // ||
	precAnd        = 8  // &&
	precCompare    = 9  // == != < > <= >= === !== =~= =~~=
	precBitOr      = 10 // |
	precBitXor     = 11 // ^
	precBitAnd     = 12 // &
	precShift      = 13 // << >>
	precAdditive   = 14 // + -
	precMultiplied = 15 // * / %
	precCast       = 16 // as, is, matches
)

// binaryPrec returns the precedence of k as an infix operator and whether it
// associates to the right. A negative precedence means k is not infix.
func binaryPrec(k token.Kind) (int, bool) {
	switch k {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
		token.CaretEq, token.AmpEq, token.PipeEq, token.ShlEq, token.ShrEq:
		return precAssign, true
	case token.DotDot, token.DotDotEq:
		return precRange, false
	case token.BigOr:
		return precBigOr, false
	case token.BigAnd:
		return precBigAnd, false
	case token.Equiv:
		return precEquiv, false
	case token.Implies:
		return precImplies, true
	case token.Explies:
		return precImplies, false
	case token.OrOr:
		return precOr, false
	case token.AndAnd:
		return precAnd, false
	case token.EqEq, token.Ne, token.Lt, token.Gt, token.Le, token.Ge, token.EqEqEq, token.NeEqEq,
		token.ExtEq, token.ExtEqEq:
		return precCompare, false
	case token.Pipe:
		return precBitOr, false
	case token.Caret:
		return precBitXor, false
	case token.Amp:
		return precBitAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplied, false
	case token.KwAs:
		return precCast, false
	}
	return -1, false
}

// Precedence returns the binding strength of k as an infix operator, or -1.
func Precedence(k token.Kind) int {
	prec, _ := binaryPrec(k)
	return prec
}

// RightAssoc reports infix operators that group to the right.
func RightAssoc(k token.Kind) bool {
	_, right := binaryPrec(k)
	return right
}
