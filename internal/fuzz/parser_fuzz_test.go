package fuzztests

import (
	"context"
	"testing"
	"time"

	"vfmt/internal/cst"
	"vfmt/internal/lexer"
	"vfmt/internal/parser"
	"vfmt/internal/source"
	"vfmt/internal/testkit"
	"vfmt/internal/trivia"
)

// parseTimeout bounds one parse; longer means a loop that makes no progress.
const parseTimeout = 5 * time.Second

// FuzzParserOwnsEveryToken checks that a successful parse places each
// token in the tree exactly once and that no input hangs the parser.
func FuzzParserOwnsEveryToken(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("fn f() { { { { } } } }"))
	f.Add([]byte("fn f() requires { }"))
	f.Add([]byte("fn f() { let x = ; }"))
	f.Add([]byte("verus! { fn f() {}"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		type outcome struct {
			toks, owned int
			ok          bool
			invariant   error
		}
		done := make(chan outcome, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.rs", input))
			toks := lexer.Tokenize(file, lexer.Options{})
			trivia.Reattach(toks)
			root, err := parser.ParseFile(toks, parser.Options{})
			if err != nil {
				done <- outcome{}
				return
			}
			done <- outcome{
				toks:      len(toks),
				owned:     len(cst.Tokens(root)),
				ok:        true,
				invariant: testkit.CheckSpanInvariants(root, file),
			}
		}()

		select {
		case res := <-done:
			if res.ok && res.toks != res.owned {
				t.Fatalf("tree owns %d of %d tokens for %q", res.owned, res.toks, truncateForLog(input, 200))
			}
			if res.invariant != nil {
				t.Fatalf("%v\ninput: %q", res.invariant, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang: no result after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
