package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"paracell/internal/diag"
	"paracell/internal/driver"
	"paracell/internal/project"
	"paracell/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.flow|directory]",
	Short: "Lower and resolve flow sources",
	Long: `Check runs the full pipeline (parse, lower, resolve) on a file or on every
.flow file under a directory. Without an argument it checks the source root
of the nearest paracell.toml. Exits with status 1 when any error is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type checkConfig struct {
	target  string
	baseDir string
	format  outputFormat
	opts    driver.Options
	cache   bool
	ui      uiMode
}

// loadCheckConfig merges flags over the manifest found from the target.
// Flags set explicitly always win.
func loadCheckConfig(cmd *cobra.Command, args []string) (checkConfig, error) {
	var cfg checkConfig
	var err error
	if cfg.format, err = readFormat(cmd, formatPretty, formatJSON, formatYAML, formatShort); err != nil {
		return cfg, err
	}
	uiRaw, err := cmd.Flags().GetString("ui")
	if err != nil {
		return cfg, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cfg.ui, err = readUIMode(uiRaw); err != nil {
		return cfg, err
	}
	if cfg.opts.MaxDiagnostics, err = maxDiagnostics(cmd); err != nil {
		return cfg, err
	}
	if cfg.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	cfg.cache = !boolFlag(cmd, "no-cache")

	start := "."
	if len(args) == 1 {
		cfg.target = args[0]
		start = args[0]
		if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	manifest, ok, err := project.Discover(start)
	if err != nil {
		return cfg, err
	}
	if !ok {
		if cfg.target == "" {
			return cfg, fmt.Errorf("no %s found; pass a file or directory", project.ManifestName)
		}
		return cfg, nil
	}

	if cfg.target == "" {
		if cfg.target, err = manifest.SourceDir(); err != nil {
			return cfg, err
		}
	}
	cfg.baseDir = manifest.Root
	if !cmd.Flags().Changed("jobs") && manifest.Check.Jobs > 0 {
		cfg.opts.Jobs = manifest.Check.Jobs
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Check.MaxDiagnostics > 0 {
		cfg.opts.MaxDiagnostics = manifest.Check.MaxDiagnostics
	}
	if !cmd.Flags().Changed("no-cache") {
		cfg.cache = manifest.Check.Cache
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	cfg, err := loadCheckConfig(cmd, args)
	if err != nil {
		return err
	}
	quiet := boolFlag(cmd, "quiet")
	if cfg.cache {
		cache, cacheErr := driver.OpenDiskCache("paracell")
		if cacheErr != nil && !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", cacheErr)
		}
		cfg.opts.Cache = cache
	}
	if cfg.baseDir == "" {
		if info, statErr := os.Stat(cfg.target); statErr == nil && info.IsDir() {
			cfg.baseDir = cfg.target
		}
	}
	cfg.opts.BaseDir = cfg.baseDir

	res, err := execCheck(cmd, cfg, quiet)
	if err != nil {
		return err
	}

	if boolFlag(cmd, "timings") && cfg.format != formatPretty {
		res.AddTimingDiagnostic()
	}
	if err := writeDiagnostics(cmd, cmd.OutOrStdout(), os.Stdout, res.Bag, res.FileSet, cfg.format, cfg.baseDir); err != nil {
		return err
	}
	if cfg.format == formatPretty {
		printTimings(cmd, res.Timing)
		if !quiet {
			printCheckSummary(cmd, res, cfg.opts.Cache)
		}
	}
	if res.Broken() {
		return errDiagnostics
	}
	return nil
}

func execCheck(cmd *cobra.Command, cfg checkConfig, quiet bool) (*driver.CheckResult, error) {
	ctx := cmd.Context()
	info, err := os.Stat(cfg.target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() || cfg.format != formatPretty || quiet || !shouldUseTUI(cfg.ui) {
		return driver.Check(ctx, cfg.target, cfg.opts)
	}

	files, err := driver.ListSourceFiles(cfg.target)
	if err != nil {
		return nil, err
	}
	display := make([]string, len(files))
	for i, f := range files {
		display[i] = f
		if rel, relErr := filepath.Rel(cfg.baseDir, f); relErr == nil {
			display[i] = filepath.ToSlash(rel)
		}
	}
	var res *driver.CheckResult
	err = ui.Run(cmd.OutOrStdout(), "check "+cfg.target, display, func(sink driver.ProgressSink) error {
		opts := cfg.opts
		opts.Progress = sink
		var runErr error
		res, runErr = driver.CheckDir(ctx, cfg.target, opts)
		return runErr
	})
	return res, err
}

func printCheckSummary(cmd *cobra.Command, res *driver.CheckResult, cache *driver.DiskCache) {
	var errs, broken int
	for _, d := range res.Bag.Items() {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	for _, f := range res.Files {
		if f.Broken() {
			broken++
		}
	}
	msg := fmt.Sprintf("checked %d files: %d with errors, %d errors", len(res.Files), broken, errs)
	if hits, misses := cache.Stats(); hits+misses > 0 {
		msg += fmt.Sprintf(" (cache %d/%d)", hits, hits+misses)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
