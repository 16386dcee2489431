package format

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"fortio.org/safecast"

	"vfmt/internal/cst"
	"vfmt/internal/delegate"
	"vfmt/internal/diag"
	"vfmt/internal/doc"
	"vfmt/internal/lexer"
	"vfmt/internal/parser"
	"vfmt/internal/source"
	"vfmt/internal/token"
	"vfmt/internal/trace"
	"vfmt/internal/trivia"
)

// DefaultLineWidth is used when Options.LineWidth is zero.
const DefaultLineWidth = 100

// Options configure one call. The zero value formats with the default
// width and no delegation.
type Options struct {
	LineWidth int
	// FileName is used in diagnostics only.
	FileName string
	// Delegate hands runs of plain Rust items to Formatter.
	Delegate bool
	// DelegateConfig is passed to Formatter untouched; nil when absent.
	DelegateConfig []byte
	Formatter      delegate.Formatter
	// Reporter receives delegation warnings as diagnostics. May be nil.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.FileName == "" {
		o.FileName = "<input>"
	}
	return o
}

// Result is the canonical text and the warnings collected on the way.
type Result struct {
	Text     []byte
	Warnings []DelegationWarning
}

// DelegationWarning reports a region the delegated formatter could not
// handle. The region keeps the core rendering.
type DelegationWarning struct {
	Span    source.Span
	Message string
	Err     error
}

func (w DelegationWarning) String() string {
	if w.Err != nil {
		return w.Message + ": " + w.Err.Error()
	}
	return w.Message
}

// LexError reports input that is not valid UTF-8.
type LexError struct {
	Span    source.Span
	Line    uint32
	Col     uint32
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Diagnostic converts the error for diagfmt.
func (e *LexError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.LexInvalidUTF8, e.Span, e.Message)
}

// ParseError reports the first construct the parser could not match.
type ParseError struct {
	Code    diag.Code
	Span    source.Span
	Line    uint32
	Col     uint32
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Diagnostic converts the error for diagfmt.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message)
}

// AsDiagnostic extracts the diagnostic behind a Source error.
func AsDiagnostic(err error) (diag.Diagnostic, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Diagnostic(), true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Diagnostic(), true
	}
	return diag.Diagnostic{}, false
}

// Source formats src. It either returns the whole canonical text or an
// error; there is no partial output.
func Source(ctx context.Context, src []byte, opts Options) (Result, error) {
	fs := source.NewFileSet()
	_, res, err := formatIn(ctx, fs, src, opts)
	return res, err
}

// SourceIn is Source for a caller that owns the FileSet, so that spans in
// errors and warnings can be resolved against it.
func SourceIn(ctx context.Context, fs *source.FileSet, src []byte, opts Options) (source.FileID, Result, error) {
	return formatIn(ctx, fs, src, opts)
}

func formatIn(ctx context.Context, fs *source.FileSet, src []byte, opts Options) (source.FileID, Result, error) {
	opts = opts.withDefaults()
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	fileID := fs.AddVirtual(opts.FileName, src)
	file := fs.Get(fileID)

	span := trace.Begin(tracer, trace.ScopePass, "lex", parent)
	if off, ok := firstInvalidUTF8(src); !ok {
		sp := source.Span{File: fileID, Start: off, End: off + 1}
		start, _ := fs.Resolve(sp)
		span.End("error: invalid utf-8")
		return fileID, Result{}, &LexError{Span: sp, Line: start.Line, Col: start.Col, Message: "source is not valid UTF-8"}
	}
	toks := lexer.Tokenize(file, lexer.Options{})
	trivia.Reattach(toks)
	span.WithExtra("tokens", strconv.Itoa(len(toks))).End("")

	span = trace.Begin(tracer, trace.ScopePass, "parse", parent)
	root, perr := parser.ParseFile(toks, parser.Options{})
	if perr != nil {
		span.End("error: " + perr.Message)
		start, _ := fs.Resolve(perr.Span)
		return fileID, Result{}, &ParseError{
			Code: perr.Code, Span: perr.Span,
			Line: start.Line, Col: start.Col,
			Message: perr.Message,
		}
	}
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "layout", parent)
	p := &printer{delegate: opts.Delegate && opts.Formatter != nil}
	d := p.node(root)
	span.WithExtra("regions", strconv.Itoa(len(p.regions))).End("")

	span = trace.Begin(tracer, trace.ScopePass, "render", parent)
	out := doc.Render(d, opts.LineWidth)
	span.WithExtra("bytes", strconv.Itoa(len(out.Text))).End("")

	res := Result{Text: []byte(out.Text)}
	if p.delegate && len(out.Regions) > 0 {
		span = trace.Begin(tracer, trace.ScopePass, "delegate", parent)
		text, warnings := p.splice(trace.WithSpan(ctx, span), out, opts)
		res.Text = []byte(text)
		res.Warnings = warnings
		span.WithExtra("warnings", strconv.Itoa(len(warnings))).End("")
		for _, w := range warnings {
			report(ctx, opts, w)
		}
	}
	return fileID, res, nil
}

// firstInvalidUTF8 returns the offset of the first byte that does not start
// a valid UTF-8 sequence.
func firstInvalidUTF8(src []byte) (uint32, bool) {
	if utf8.Valid(src) {
		return 0, true
	}
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("source offset overflow: %w", err))
			}
			return off, false
		}
		i += size
	}
	return 0, true
}

func report(ctx context.Context, opts Options, w DelegationWarning) {
	code := diag.FmtDelegationFailed
	if w.Err == nil {
		code = diag.FmtDelegationChanged
	}
	diag.ReportWarning(opts.Reporter, code, w.Span, w.String()).
		WithNote(w.Span, "region keeps the built-in layout").
		Emit()
	tracer := trace.FromContext(ctx)
	if tracer.Level().ShouldEmit(trace.ScopePass) {
		tracer.Emit(&trace.Event{
			Time:     time.Now(),
			Seq:      trace.NextSeq(),
			Kind:     trace.KindPoint,
			Scope:    trace.ScopePass,
			ParentID: trace.CurrentSpan(ctx).SpanID,
			Name:     "delegation_warning",
			Detail:   w.String(),
		})
	}
}

// Tokens lexes src the way Source does. Used by the tokenize command.
func Tokens(fs *source.FileSet, name string, src []byte) []token.Token {
	file := fs.Get(fs.AddVirtual(name, src))
	toks := lexer.Tokenize(file, lexer.Options{})
	trivia.Reattach(toks)
	return toks
}

// Parse lexes and parses src. Used by the parse command.
func Parse(fs *source.FileSet, name string, src []byte, reporter diag.Reporter) (*cst.Node, error) {
	toks := Tokens(fs, name, src)
	root, perr := parser.ParseFile(toks, parser.Options{Reporter: reporter})
	if perr != nil {
		start, _ := fs.Resolve(perr.Span)
		return nil, &ParseError{Code: perr.Code, Span: perr.Span, Line: start.Line, Col: start.Col, Message: perr.Message}
	}
	return root, nil
}
