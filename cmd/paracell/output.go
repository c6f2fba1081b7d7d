package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paracell/internal/diag"
	"paracell/internal/diagfmt"
	"paracell/internal/source"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	raw, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(raw)
	if err != nil {
		return false, err
	}
	switch mode {
	case colorOn:
		return true, nil
	case colorOff:
		return false, nil
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(f), nil
	}
}

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatYAML   outputFormat = "yaml"
	formatShort  outputFormat = "short"
)

func readFormat(cmd *cobra.Command, allowed ...outputFormat) (outputFormat, error) {
	raw, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	f := outputFormat(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", raw, strings.Join(names, "|"))
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("--max-diagnostics must be >= 0, got %d", n)
	}
	return n, nil
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, _ = cmd.Root().PersistentFlags().GetBool(name)
	}
	return v
}

// writeDiagnostics prints bag in the chosen format.
func writeDiagnostics(cmd *cobra.Command, w io.Writer, f *os.File, bag *diag.Bag, fs *source.FileSet, format outputFormat, baseDir string) error {
	switch format {
	case formatShort:
		text := diag.FormatShort(bag.Items(), fs, baseDir, false)
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, text)
		return err
	case formatJSON, formatYAML:
		opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, BaseDir: baseDir}
		if format == formatJSON {
			return diagfmt.JSON(w, bag, fs, opts)
		}
		return diagfmt.YAML(w, bag, fs, opts)
	default:
		color, err := useColor(cmd, f)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: color, Context: 1, BaseDir: baseDir, ShowNotes: true})
		return nil
	}
}

// reportStage prints bag to stderr when it holds anything and turns errors
// into errDiagnostics.
func reportStage(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	if err := writeDiagnostics(cmd, cmd.ErrOrStderr(), os.Stderr, bag, fs, formatPretty, ""); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
