package token

import (
	"strings"

	"vfmt/internal/source"
)

type TriviaKind uint8

const (
	// TriviaSpace is a run of horizontal whitespace (space, tab, \r, \f, \v).
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of consecutive '\n'.
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine is /// or //! text.
	TriviaDocLine
	// TriviaDocBlock is /** */ or /*! */ text.
	TriviaDocBlock
	// TriviaShebang is a leading #! line that is not an inner attribute.
	TriviaShebang
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports every trivia the formatter must reproduce verbatim.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock, TriviaShebang:
		return true
	}
	return false
}

// IsLineLike reports comments that run to the end of their line.
func (t Trivia) IsLineLike() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaDocLine || t.Kind == TriviaShebang
}

// Newlines counts line breaks inside whitespace trivia.
func (t Trivia) Newlines() int {
	if t.Kind != TriviaNewline {
		return 0
	}
	return strings.Count(t.Text, "\n")
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line_comment"
	case TriviaBlockComment:
		return "block_comment"
	case TriviaDocLine:
		return "doc_line"
	case TriviaDocBlock:
		return "doc_block"
	case TriviaShebang:
		return "shebang"
	}
	return "unknown"
}
