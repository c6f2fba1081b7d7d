package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paracell/internal/diagfmt"
	"paracell/internal/driver"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] file.flow",
	Short: "Print the Semantic IR of a flow source file",
	Long:  `Lower parses a file and prints its Semantic IR, or the first structural error that stopped lowering.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runLower(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := readFormat(cmd, formatPretty, formatJSON, formatYAML)
	if err != nil {
		return err
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Lower(cmd.Context(), args[0], maxDiags)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}
	if err := reportStage(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		err = diagfmt.FormatIRJSON(out, res.IR)
	case formatYAML:
		err = diagfmt.FormatIRYAML(out, res.IR)
	default:
		err = diagfmt.FormatIRPretty(out, res.IR)
	}
	if err != nil {
		return err
	}
	printTimings(cmd, res.Timing)
	return nil
}
