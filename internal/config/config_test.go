package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vfmt/internal/diag"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.LineWidth != DefaultLineWidth || cfg.Delegate {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "vfmt.toml"), `
line_width = 80
delegate = true
delegate_command = ["rustfmt", "--edition", "2021"]
delegate_config = "rustfmt.toml"
jobs = 4
exclude = ["target", "*_gen.rs"]
`)
	write(t, filepath.Join(root, "rustfmt.toml"), "max_width = 80\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LineWidth != 80 || !cfg.Delegate || cfg.Jobs != 4 {
		t.Fatalf("got %+v", cfg)
	}
	if !slices.Equal(cfg.DelegateCommand, []string{"rustfmt", "--edition", "2021"}) {
		t.Fatalf("delegate_command = %q", cfg.DelegateCommand)
	}
	if !slices.Equal(cfg.Exclude, []string{"target", "*_gen.rs"}) {
		t.Fatalf("exclude = %q", cfg.Exclude)
	}
	if string(cfg.DelegateConfig) != "max_width = 80\n" {
		t.Fatalf("delegate config = %q", cfg.DelegateConfig)
	}
	if cfg.DelegateConfigPath != filepath.Join(root, "rustfmt.toml") {
		t.Fatalf("delegate config path = %q", cfg.DelegateConfigPath)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vfmt.yaml")
	write(t, path, "line_width: 120\nexclude:\n  - vendor\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LineWidth != 120 || !slices.Equal(cfg.Exclude, []string{"vendor"}) {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vfmt.yml")
	write(t, path, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LineWidth != DefaultLineWidth {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    diag.Code
	}{
		{"unknown toml key", "vfmt.toml", "width = 80\n", diag.CfgUnknownKey},
		{"unknown yaml key", ".vfmt.yaml", "width: 80\n", diag.CfgUnknownKey},
		{"bad toml", "vfmt.toml", "line_width = \n", diag.CfgInvalid},
		{"wrong type", "vfmt.toml", "line_width = \"wide\"\n", diag.CfgInvalid},
		{"zero width", "vfmt.toml", "line_width = 0\n", diag.CfgInvalid},
		{"negative jobs", ".vfmt.yaml", "jobs: -1\n", diag.CfgInvalid},
		{"bad pattern", "vfmt.toml", "exclude = [\"[\"]\n", diag.CfgInvalid},
		{"missing delegate config", "vfmt.toml", "delegate_config = \"nope.toml\"\n", diag.CfgInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			write(t, path, tt.content)
			_, err := Load(path)
			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if cfgErr.Code != tt.code {
				t.Fatalf("code = %v, want %v (%v)", cfgErr.Code, tt.code, err)
			}
		})
	}
}

func TestCacheSalt(t *testing.T) {
	a := Default()
	b := Default()
	b.LineWidth = 80
	c := Default()
	c.DelegateConfig = []byte("max_width = 80\n")
	if a.CacheSalt("1") == b.CacheSalt("1") || a.CacheSalt("1") == c.CacheSalt("1") {
		t.Fatal("salt ignores settings")
	}
	if a.CacheSalt("1") == a.CacheSalt("2") {
		t.Fatal("salt ignores version")
	}
}
