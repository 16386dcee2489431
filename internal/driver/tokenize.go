package driver

import (
	"io"
	"os"

	"vfmt/internal/diag"
	"vfmt/internal/format"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

// TokenizeResult is the token stream of one file, with comments already
// reattached.
type TokenizeResult struct {
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize reads and lexes one file. Lexing never fails on readable input.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	text, err := readSource(path)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	return &TokenizeResult{
		FileSet: fs,
		Tokens:  format.Tokens(fs, path, text),
		Bag:     diag.NewBag(maxDiagnostics),
	}, nil
}

// readSource reads path, or stdin for "-", and decodes it.
func readSource(path string) ([]byte, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		// #nosec G304 -- path is provided by the caller
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	text, _, err := decode(raw)
	return text, err
}
