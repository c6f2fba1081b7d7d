package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"paracell/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create paracell.toml and a starter source file",
	Long: `Init writes a project manifest (paracell.toml) and src/main.flow into dir,
creating the directory when it does not exist. Without dir it initializes the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (default: directory name)")
}

const starterSource = `// A list of naturals and its length.
type List = union { Nil: (), Cons: record { head: Nat, tail: List } }

let len = fun (l: List) -> Nat {
	match l { Nil => 0, Cons(h, t) => 1 + len(t) }
}
`

var packageNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, statErr := os.Stat(target); statErr != nil {
		if !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(target)
		if !packageNameRE.MatchString(name) {
			name = "paracell-project"
		}
	} else if !packageNameRE.MatchString(name) {
		return fmt.Errorf("invalid package name %q", name)
	}

	manifestPath, err := project.WriteManifest(target, project.Default(name))
	if err != nil {
		return err
	}
	srcDir := filepath.Join(target, project.DefaultSourceRoot)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	mainPath := filepath.Join(srcDir, "main.flow")
	created := []string{manifestPath}
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(starterSource), 0o644); err != nil { //nolint:gosec // source files are world-readable
			return err
		}
		created = append(created, mainPath)
	}

	if !boolFlag(cmd, "quiet") {
		for _, p := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", p)
		}
	}
	return nil
}
