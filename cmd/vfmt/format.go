package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vfmt/internal/config"
	"vfmt/internal/delegate"
	"vfmt/internal/driver"
	"vfmt/internal/format"
	"vfmt/internal/observ"
	"vfmt/internal/version"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path|-> [path...]",
	Short: "Format Verus/Rust source files",
	Long: `Format rewrites each file in canonical layout. Directories are walked for
*.rs files. A single "-" reads stdin and writes the result to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change, write nothing")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff of the changes (implies --check)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "report format (text|short|json)")
	fmtCmd.Flags().Int("width", 0, "maximum line width (overrides the config file)")
	fmtCmd.Flags().Bool("delegate", false, "hand plain Rust items to the external formatter")
	fmtCmd.Flags().Int("jobs", 0, "files formatted in parallel (0=auto)")
	fmtCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	fmtCmd.Flags().Bool("timings", false, "print per-phase timings to stderr")
	fmtCmd.Flags().Bool("no-cache", false, "do not consult or update the cache of canonical files")
	fmtCmd.Flags().String("config", "", "configuration file (default: discovered from the first path)")
}

type fmtFlags struct {
	check      bool
	diff       bool
	stdout     bool
	format     string
	ui         uiMode
	timings    bool
	noCache    bool
	quiet      bool
	maxDiag    int
	configPath string
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	if f.check, err = flags.GetBool("check"); err != nil {
		return f, err
	}
	if f.diff, err = flags.GetBool("diff"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.timings, err = flags.GetBool("timings"); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.configPath, err = flags.GetString("config"); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}
	if f.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, err
	}

	if f.diff {
		f.check = true
	}
	switch f.format {
	case "text", "short", "json":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	}
	if f.stdout && f.check {
		return f, errors.New("fmt: --stdout cannot be used with --check or --diff")
	}
	if f.stdout && f.format != "text" {
		return f, errors.New("fmt: --stdout is only supported with text output")
	}
	return f, nil
}

// loadConfig finds the configuration and applies explicit flags on top.
func loadConfig(cmd *cobra.Command, args []string, configPath string) (config.Config, error) {
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		start := "."
		if args[0] != "-" {
			start = args[0]
		}
		cfg, err = config.Discover(start)
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		width, _ := flags.GetInt("width")
		if width <= 0 {
			return cfg, fmt.Errorf("fmt: --width must be positive, got %d", width)
		}
		cfg.LineWidth = width
	}
	if flags.Changed("delegate") {
		cfg.Delegate, _ = flags.GetBool("delegate")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	return cfg, nil
}

func buildFormatOptions(cfg config.Config, f fmtFlags) driver.FormatOptions {
	opts := driver.FormatOptions{
		Options: format.Options{
			LineWidth:      cfg.LineWidth,
			Delegate:       cfg.Delegate,
			DelegateConfig: cfg.DelegateConfig,
		},
		Check:          f.check,
		Stdout:         f.stdout,
		Jobs:           cfg.Jobs,
		Exclude:        cfg.Exclude,
		MaxDiagnostics: f.maxDiag,
		Timings:        f.timings,
	}
	if cfg.Delegate {
		cmd := &delegate.Command{Args: cfg.DelegateCommand, Width: cfg.LineWidth}
		if cfg.DelegateConfigPath != "" {
			cmd.ConfigName = filepath.Base(cfg.DelegateConfigPath)
		}
		opts.Options.Formatter = cmd
	}
	return opts
}

func runFmt(cmd *cobra.Command, args []string) error {
	flags, err := readFmtFlags(cmd)
	if err != nil {
		return &exitError{code: exitFailure, msg: err.Error()}
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cfg, err := loadConfig(cmd, args, flags.configPath)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			return &exitError{code: exitFailure, msg: fmt.Sprintf("%s: %s: %v", cfgErr.Path, cfgErr.Code.ID(), cfgErr.Err)}
		}
		return err
	}
	opts := buildFormatOptions(cfg, flags)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if len(args) == 1 && args[0] == "-" {
		return runFmtStdin(cmd, opts, flags, stdout, stderr)
	}

	if !flags.noCache {
		if cache, cacheErr := driver.OpenDiskCache("vfmt"); cacheErr == nil {
			opts.Cache = cache
			opts.CacheSalt = cfg.CacheSalt(version.Version)
		}
	}

	ctx := cmd.Context()
	files, err := driver.CollectSourceFiles(ctx, args, cfg.Exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &exitError{code: exitFailure, msg: "fmt: no source files found"}
	}

	var results []driver.FormatResult
	if !flags.stdout && !flags.quiet && flags.format == "text" && shouldUseTUI(flags.ui, len(files)) {
		results, err = runFormatWithUI(ctx, "formatting", files, opts)
	} else {
		results, err = driver.FormatPaths(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	summary := summarize(results)
	switch flags.format {
	case "text":
		if flags.stdout {
			renderFmtStdout(stdout, results)
		} else {
			renderFmtText(stdout, results, flags.check, flags.quiet)
		}
		renderFmtDiagnostics(stderr, results, useColorFor(cmd, os.Stderr))
	case "short":
		renderFmtShort(stdout, results)
	case "json":
		if err := renderFmtJSON(stdout, results, flags.check); err != nil {
			return err
		}
	}
	if flags.diff {
		if err := renderFmtDiff(stdout, results); err != nil {
			return err
		}
	}
	if flags.timings {
		reports := make([]observ.Report, 0, len(results))
		for _, res := range results {
			if res.Timing != nil {
				reports = append(reports, *res.Timing)
			}
		}
		printTimings(stderr, observ.Merge(reports...), len(results))
	}
	return summary.exitErr(flags.check)
}

func runFmtStdin(cmd *cobra.Command, opts driver.FormatOptions, flags fmtFlags, stdout, stderr io.Writer) error {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: failed to read stdin: %w", err)
	}
	res := driver.FormatBytes(cmd.Context(), "<stdin>", raw, opts, nil)
	results := []driver.FormatResult{res}

	switch flags.format {
	case "json":
		if err := renderFmtJSON(stdout, results, flags.check); err != nil {
			return err
		}
	case "short":
		renderFmtShort(stdout, results)
	default:
		if res.Err == nil && !flags.check {
			_, _ = stdout.Write(res.Formatted)
		} else if flags.check && res.Changed && !flags.quiet {
			fmt.Fprintln(stdout, res.Path)
		}
		renderFmtDiagnostics(stderr, results, useColorFor(cmd, os.Stderr))
	}
	if flags.diff && res.Err == nil {
		if err := writeDiff(stdout, res.Path, string(raw), string(res.Formatted)); err != nil {
			return err
		}
	}
	return summarize(results).exitErr(flags.check)
}

type fmtSummary struct {
	files   int
	changed int
	cached  int
	failed  int
}

func summarize(results []driver.FormatResult) fmtSummary {
	s := fmtSummary{files: len(results)}
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.failed++
		case res.Cached:
			s.cached++
		case res.Changed:
			s.changed++
		}
	}
	return s
}

// exitErr maps a run to its exit code: failures first, then pending
// changes under --check.
func (s fmtSummary) exitErr(check bool) error {
	if s.failed > 0 {
		return &exitError{code: exitFailure, msg: fmt.Sprintf("fmt: failed to format %d of %d file(s)", s.failed, s.files)}
	}
	if check && s.changed > 0 {
		return &exitError{code: exitChanged}
	}
	return nil
}
