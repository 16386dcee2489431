package fuzztests

import (
	"strings"
	"testing"

	"vfmt/internal/diag"
	"vfmt/internal/lexer"
	"vfmt/internal/source"
	"vfmt/internal/token"
	"vfmt/internal/trivia"
)

func concat(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		for _, tv := range tok.Leading {
			b.WriteString(tv.Text)
		}
		b.WriteString(tok.Text)
		for _, tv := range tok.Trailing {
			b.WriteString(tv.Text)
		}
	}
	return b.String()
}

// FuzzLexerLossless checks that tokens and trivia spell the input back,
// before and after comments move to their owning tokens.
func FuzzLexerLossless(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", input))
		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		if got := concat(toks); got != string(input) {
			t.Fatalf("lexer lost bytes:\n got %q\nwant %q", got, input)
		}
		trivia.Reattach(toks)
		if got := concat(toks); got != string(input) {
			t.Fatalf("reattach lost bytes:\n got %q\nwant %q", got, input)
		}
	})
}
