package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics; nil discards them.
	// Lexing always continues: bad input becomes an Invalid token.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
