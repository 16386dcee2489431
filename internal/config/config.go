// Package config finds and reads the per-project formatter settings.
package config

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"vfmt/internal/diag"
)

// Names looked up in every directory, in order.
var Names = []string{"vfmt.toml", ".vfmt.yaml", ".vfmt.yml"}

const (
	DefaultLineWidth = 100
	maxLineWidth     = 1000
)

// Config is the resolved configuration. Path is empty when no file was
// found and the defaults apply.
type Config struct {
	Path      string
	LineWidth int
	Delegate  bool
	// DelegateCommand is argv of the delegated formatter; empty means the
	// built-in default.
	DelegateCommand []string
	// DelegateConfigPath is absolute; DelegateConfig holds its content.
	DelegateConfigPath string
	DelegateConfig     []byte
	Jobs               int
	Exclude            []string
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{LineWidth: DefaultLineWidth}
}

// fileConfig mirrors the file keys. Pointers tell "absent" from zero.
type fileConfig struct {
	LineWidth       *int     `toml:"line_width" yaml:"line_width"`
	Delegate        *bool    `toml:"delegate" yaml:"delegate"`
	DelegateCommand []string `toml:"delegate_command" yaml:"delegate_command"`
	DelegateConfig  string   `toml:"delegate_config" yaml:"delegate_config"`
	Jobs            *int     `toml:"jobs" yaml:"jobs"`
	Exclude         []string `toml:"exclude" yaml:"exclude"`
}

// Error is a configuration file that could not be used.
type Error struct {
	Path string
	Code diag.Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Find walks up from startDir and returns the first configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds the file governing startDir and loads it. Without a file
// it returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads one configuration file. The format follows the extension.
// Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Code: diag.CfgInvalid, Err: err}
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			code := diag.CfgInvalid
			if strings.Contains(err.Error(), "not found in type") {
				code = diag.CfgUnknownKey
			}
			return Config{}, &Error{Path: path, Code: code, Err: fmt.Errorf("failed to parse YAML: %w", err)}
		}
	default:
		meta, err := toml.Decode(string(data), &fc)
		if err != nil {
			return Config{}, &Error{Path: path, Code: diag.CfgInvalid, Err: fmt.Errorf("failed to parse TOML: %w", err)}
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, &Error{Path: path, Code: diag.CfgUnknownKey, Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
		}
	}
	return resolve(path, fc)
}

func resolve(path string, fc fileConfig) (Config, error) {
	cfg := Default()
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.Path = abs

	invalid := func(format string, args ...any) (Config, error) {
		return Config{}, &Error{Path: path, Code: diag.CfgInvalid, Err: fmt.Errorf(format, args...)}
	}
	if fc.LineWidth != nil {
		if *fc.LineWidth <= 0 || *fc.LineWidth > maxLineWidth {
			return invalid("line_width must be between 1 and %d, got %d", maxLineWidth, *fc.LineWidth)
		}
		cfg.LineWidth = *fc.LineWidth
	}
	if fc.Delegate != nil {
		cfg.Delegate = *fc.Delegate
	}
	if fc.Jobs != nil {
		if *fc.Jobs < 0 {
			return invalid("jobs must not be negative, got %d", *fc.Jobs)
		}
		cfg.Jobs = *fc.Jobs
	}
	for _, arg := range fc.DelegateCommand {
		if strings.TrimSpace(arg) == "" {
			return invalid("delegate_command has an empty argument")
		}
	}
	cfg.DelegateCommand = fc.DelegateCommand
	for _, pat := range fc.Exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return invalid("exclude pattern %q: %w", pat, err)
		}
	}
	cfg.Exclude = fc.Exclude

	if fc.DelegateConfig != "" {
		p := fc.DelegateConfig
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(abs), filepath.FromSlash(p))
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return invalid("delegate_config: %w", err)
		}
		cfg.DelegateConfigPath = p
		cfg.DelegateConfig = data
	}
	return cfg, nil
}

// CacheSalt identifies every setting that can change the output.
func (c Config) CacheSalt(version string) string {
	sum := sha256.Sum256(c.DelegateConfig)
	return fmt.Sprintf("%s|w=%d|d=%t|cmd=%q|cfg=%x", version, c.LineWidth, c.Delegate, c.DelegateCommand, sum[:8])
}
