package driver

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/format"
	"vfmt/internal/source"
)

// ParseResult holds the tree of one file. Root is nil when the parser
// stopped; the error is then in Bag.
type ParseResult struct {
	FileSet *source.FileSet
	Root    *cst.Node
	Bag     *diag.Bag
}

// Parse reads and parses one file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	text, err := readSource(path)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	root, err := format.Parse(fs, path, text, &diag.BagReporter{Bag: bag})
	if err != nil {
		if d, ok := format.AsDiagnostic(err); ok {
			bag.Add(d)
		}
	}
	return &ParseResult{FileSet: fs, Root: root, Bag: bag}, nil
}
