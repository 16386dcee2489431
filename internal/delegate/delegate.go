// Package delegate hands plain Rust fragments to an external formatter.
package delegate

import (
	"context"
	"errors"
)

// Formatter formats a fragment of items. indent is the column the fragment
// will be placed at; fragments arrive dedented to column zero. config is an
// opaque blob passed through unchanged, nil when absent.
type Formatter interface {
	Format(ctx context.Context, fragment string, indent int, config []byte) (string, error)
}

// Func adapts a plain function to Formatter.
type Func func(ctx context.Context, fragment string, indent int, config []byte) (string, error)

func (f Func) Format(ctx context.Context, fragment string, indent int, config []byte) (string, error) {
	return f(ctx, fragment, indent, config)
}

// ErrUnavailable reports that no external formatter could be started.
var ErrUnavailable = errors.New("delegate: formatter unavailable")
