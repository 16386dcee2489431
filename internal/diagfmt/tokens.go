package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"vfmt/internal/source"
	"vfmt/internal/token"
)

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type TokenOutput struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Leading  []TriviaOutput `json:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty"`
}

func triviaKinds(ts []token.Trivia) string {
	kinds := make([]string, len(ts))
	for i, tv := range ts {
		kinds[i] = tv.Kind.String()
	}
	return strings.Join(kinds, ", ")
}

// FormatTokensPretty writes one line per token with its position and the
// kinds of its trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(tok.Leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", triviaKinds(tok.Leading))
		}
		if len(tok.Trailing) > 0 {
			fmt.Fprintf(&b, " (trailing: %s)", triviaKinds(tok.Trailing))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func triviaOutput(ts []token.Trivia) []TriviaOutput {
	if len(ts) == 0 {
		return nil
	}
	out := make([]TriviaOutput, len(ts))
	for i, tv := range ts {
		out[i] = TriviaOutput{Kind: tv.Kind.String(), Text: tv.Text}
	}
	return out
}

// FormatTokensJSON writes the tokens with their full trivia as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Leading:  triviaOutput(tok.Leading),
			Trailing: triviaOutput(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
