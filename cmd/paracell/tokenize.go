package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paracell/internal/diagfmt"
	"paracell/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.flow",
	Short: "Print the tokens of a flow source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := readFormat(cmd, formatPretty, formatJSON)
	if err != nil {
		return err
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Tokenize(args[0], maxDiags)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	return reportStage(cmd, result.Bag, result.FileSet)
}
