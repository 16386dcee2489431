package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"vfmt/internal/diag"
	"vfmt/internal/diagfmt"
	"vfmt/internal/driver"
	"vfmt/internal/observ"
)

func renderFmtStdout(out io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, quiet bool) {
	if quiet {
		return
	}
	for _, res := range results {
		if res.Err != nil || !res.Changed {
			continue
		}
		var printErr error
		if check {
			_, printErr = fmt.Fprintln(out, res.Path)
		} else {
			_, printErr = fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
}

// renderFmtDiagnostics prints parse errors and delegation warnings of
// every file.
func renderFmtDiagnostics(out io.Writer, results []driver.FormatResult, useColor bool) {
	opts := diagfmt.PrettyOpts{Color: useColor, Context: 1, ShowNotes: true}
	for _, res := range results {
		if res.Bag == nil || res.Bag.Len() == 0 {
			continue
		}
		res.Bag.Sort()
		diagfmt.Pretty(out, res.Bag, res.FileSet, opts)
	}
}

func renderFmtShort(out io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Bag != nil && res.Bag.Len() > 0 {
			fmt.Fprint(out, diag.FormatShort(res.Bag.Items(), res.FileSet, false))
		}
		if res.Err == nil && res.Changed {
			fmt.Fprintf(out, "%s %s %s %s\n", diag.SevInfo.Label(), diag.FmtWouldReformat.ID(), res.Path, diag.FmtWouldReformat.Title())
		}
	}
}

type fmtJSONResult struct {
	Path        string                   `json:"path"`
	Changed     bool                     `json:"changed"`
	Cached      bool                     `json:"cached,omitempty"`
	Check       bool                     `json:"check"`
	Error       string                   `json:"error,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
	Timing      *observ.Report           `json:"timing,omitempty"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{
			Path:    res.Path,
			Changed: res.Changed,
			Cached:  res.Cached,
			Check:   check,
			Timing:  res.Timing,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.Bag.Len() > 0 {
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}).Diagnostics
		}
		payload = append(payload, jr)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// renderFmtDiff prints a unified diff for every file that would change.
// Results of a --check run still hold the canonical text.
func renderFmtDiff(out io.Writer, results []driver.FormatResult) error {
	for _, res := range results {
		if res.Err != nil || !res.Changed || res.Formatted == nil {
			continue
		}
		// #nosec G304 -- path comes from the file walk
		original, err := os.ReadFile(res.Path)
		if err != nil {
			return fmt.Errorf("fmt: failed to read %s for diff: %w", res.Path, err)
		}
		if err := writeDiff(out, res.Path, string(original), string(res.Formatted)); err != nil {
			return err
		}
	}
	return nil
}

func writeDiff(out io.Writer, path, original, formatted string) error {
	slash := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
	return difflib.WriteUnifiedDiff(out, difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "a/" + slash,
		ToFile:   "b/" + slash,
		Context:  3,
	})
}

func printTimings(out io.Writer, report observ.Report, files int) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	_, printErr := fmt.Fprintf(out, "%d file(s)\n%s", files, report.String())
	if printErr != nil {
		panic(printErr)
	}
}
