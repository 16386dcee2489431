package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// autoPathLimit is the longest path PathModeAuto prints unchanged.
const autoPathLimit = 40

func displayPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		base := baseDir
		if base == "" {
			if wd, err := os.Getwd(); err == nil {
				base = wd
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil || base == "" {
			return path
		}
		if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		if filepath.IsAbs(path) && len(path) > autoPathLimit {
			return filepath.Base(path)
		}
		return path
	}
}
