package delegate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultCommand is the formatter used when no command is configured.
var DefaultCommand = []string{"rustfmt", "--emit", "stdout", "--edition", "2021"}

// Command runs an external formatter that reads the fragment on stdin and
// prints the result on stdout.
type Command struct {
	// Args is the program and its arguments; DefaultCommand when empty.
	Args []string
	// ConfigName is the file name the config blob is written to.
	// Defaults to "rustfmt.toml".
	ConfigName string
	// Width, when positive, is the target line width; the program is asked
	// for Width minus the fragment's indent.
	Width int
}

func (c *Command) args() []string {
	if len(c.Args) == 0 {
		return DefaultCommand
	}
	return c.Args
}

// Format implements Formatter. The config blob is checked to be TOML and
// written into a fresh directory handed to the program via --config-path.
func (c *Command) Format(ctx context.Context, fragment string, indent int, config []byte) (string, error) {
	args := c.args()
	name, err := exec.LookPath(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnavailable, args[0], err)
	}
	rest := append([]string(nil), args[1:]...)

	if config != nil {
		var parsed map[string]any
		if _, err := toml.Decode(string(config), &parsed); err != nil {
			return "", fmt.Errorf("delegate config: %w", err)
		}
		dir, err := os.MkdirTemp("", "vfmt-delegate-")
		if err != nil {
			return "", fmt.Errorf("delegate config: %w", err)
		}
		defer os.RemoveAll(dir)
		cfgName := c.ConfigName
		if cfgName == "" {
			cfgName = "rustfmt.toml"
		}
		if err := os.WriteFile(filepath.Join(dir, cfgName), config, 0o600); err != nil {
			return "", fmt.Errorf("delegate config: %w", err)
		}
		rest = append(rest, "--config-path", dir)
	}

	if c.Width > 0 {
		rest = append(rest, "--config", fmt.Sprintf("max_width=%d", max(c.Width-indent, 1)))
	}

	cmd := exec.CommandContext(ctx, name, rest...)
	cmd.Stdin = strings.NewReader(fragment)
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s: %w", args[0], err)
		}
		return "", fmt.Errorf("%s: %s", args[0], msg)
	}
	return stdout.String(), nil
}
