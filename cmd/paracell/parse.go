package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paracell/internal/diagfmt"
	"paracell/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.flow",
	Short: "Print the surface tree of a flow source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := readFormat(cmd, formatPretty, formatJSON)
	if err != nil {
		return err
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Parse(cmd.Context(), args[0], maxDiags)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := reportStage(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		err = diagfmt.FormatASTJSON(out, res.Builder, res.ASTFile)
	} else {
		err = diagfmt.FormatASTPretty(out, res.Builder, res.ASTFile, res.FileSet)
	}
	if err != nil {
		return err
	}
	printTimings(cmd, res.Timing)
	return nil
}
