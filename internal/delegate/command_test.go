package delegate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommandUnavailable(t *testing.T) {
	c := &Command{Args: []string{"vfmt-no-such-formatter"}}
	_, err := c.Format(context.Background(), "fn f() {}\n", 0, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCommandRejectsInvalidConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses cat")
	}
	c := &Command{Args: []string{"cat"}}
	_, err := c.Format(context.Background(), "fn f() {}\n", 0, []byte("max_width = = 3"))
	if err == nil || !strings.Contains(err.Error(), "delegate config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestCommandPipesFragment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses cat")
	}
	c := &Command{Args: []string{"cat"}}
	got, err := c.Format(context.Background(), "fn f() {}\n", 4, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "fn f() {}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCommandWritesConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	// the script prints the config file it was given instead of formatting
	script := filepath.Join(t.TempDir(), "fake.sh")
	body := "#!/bin/sh\nwhile [ \"$1\" != \"--config-path\" ]; do shift; done\ncat \"$2/rustfmt.toml\"\n"
	if err := os.WriteFile(script, []byte(body), 0o700); err != nil {
		t.Fatal(err)
	}
	c := &Command{Args: []string{script}}
	got, err := c.Format(context.Background(), "", 0, []byte("max_width = 80\n"))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "max_width = 80\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFuncAdapter(t *testing.T) {
	var f Formatter = Func(func(_ context.Context, s string, indent int, _ []byte) (string, error) {
		return strings.Repeat(" ", indent) + s, nil
	})
	got, _ := f.Format(context.Background(), "x", 2, nil)
	if got != "  x" {
		t.Fatalf("got %q", got)
	}
}
