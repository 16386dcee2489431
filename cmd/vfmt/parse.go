package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vfmt/internal/cst"
	"vfmt/internal/diagfmt"
	"vfmt/internal/driver"
	"vfmt/internal/version"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.rs|->",
	Short: "Parse a source file and print its syntax tree",
	Long: `Parse builds the concrete syntax tree of one file and prints its outline.
Diagnostics go to stderr, or to stdout with --format json or sarif.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|sarif)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     useColorFor(cmd, os.Stderr),
				Context:   2,
				ShowNotes: true,
			})
		}
		if result.Root != nil {
			if err := cst.Dump(out, result.Root); err != nil {
				return err
			}
		}
	case "json":
		if err := diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
			return err
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{ToolName: "vfmt", ToolVersion: version.Version, InvocationArgs: os.Args[1:]}
		if err := diagfmt.Sarif(out, result.Bag, result.FileSet, meta); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return &exitError{code: exitFailure}
	}
	return nil
}
