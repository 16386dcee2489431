// Package version holds the build identity of vfmt. The variables can be
// overridden at build time via -ldflags "-X vfmt/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major, minor and patch in their own colours.
// Anything after the patch number ("-dev", "+build") stays plain.
func Colored() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(patch) + rest
}

// Describe is the one-line form printed by "vfmt version".
func Describe(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var b strings.Builder
	b.WriteString("vfmt ")
	b.WriteString(v)
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		b.WriteString(" (" + commit)
		if BuildDate != "" {
			b.WriteString(", " + BuildDate)
		}
		b.WriteString(")")
	}
	if GitMessage != "" {
		b.WriteString("\n  " + GitMessage)
	}
	return b.String()
}
