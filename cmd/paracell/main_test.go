package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/pflag"

	"paracell/internal/diagfmt"
)

var buildRoot sync.Once

// run executes the CLI in-process and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	buildRoot.Do(func() { newRootCmd() })
	resetFlags(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		resetFlags(c.Flags())
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err := rootCmd.Execute()
	traceCleanup()
	traceCleanup = func() {}
	return out.String(), errOut.String(), err
}

// resetFlags undoes values left over from a previous in-process run.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestReadModes(t *testing.T) {
	if m, err := readUIMode("ON"); err != nil || m != uiModeOn {
		t.Errorf("readUIMode = %v, %v", m, err)
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("expected error")
	}
	if m, err := readColorMode("never"); err != nil || m != colorOff {
		t.Errorf("readColorMode = %v, %v", m, err)
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Errorf("explicit ui modes ignored")
	}
}

func TestInitThenCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	stdout, _, err := run(t, "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, "paracell.toml") || !strings.Contains(stdout, "main.flow") {
		t.Errorf("init output = %q", stdout)
	}

	stdout, _, err = run(t, "check", "--no-cache", "--ui=off", "--format=json", filepath.Join(dir, "src"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("check json: %v\n%s", err, stdout)
	}
	if out.Count != 0 {
		t.Errorf("starter project has diagnostics: %+v", out.Diagnostics)
	}

	if _, _, err := run(t, "init", dir); err == nil {
		t.Errorf("second init must fail")
	}
}

func TestCheckReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flow")
	if err := os.WriteFile(path, []byte("let a = b"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := run(t, "check", "--no-cache", "--ui=off", "--format=pretty", "--quiet", path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stdout, "SEM3010") || !strings.Contains(stdout, `unresolved reference "b"`) {
		t.Errorf("output:\n%s", stdout)
	}
}

func TestCheckShortFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flow")
	if err := os.WriteFile(path, []byte("let a = b"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := run(t, "check", "--no-cache", "--ui=off", "--format=short", path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(stdout, "error SEM3010 ") || !strings.Contains(stdout, "bad.flow:1:9") {
		t.Errorf("output:\n%s", stdout)
	}
	if strings.Count(stdout, "\n") != 1 {
		t.Errorf("expected one line, got:\n%s", stdout)
	}
}

func TestLowerPrintsIR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flow")
	if err := os.WriteFile(path, []byte("let x = 1 + 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := run(t, "lower", "--format=pretty", path)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if strings.TrimSpace(stdout) != "let x = apply(+, {0: 1, 1: 2})" {
		t.Errorf("lower output = %q", stdout)
	}
}

func TestLowerStructuralError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flow")
	if err := os.WriteFile(path, []byte("let x = (a: 1, 2)"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, stderr, err := run(t, "lower", "--format=pretty", path)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v", err)
	}
	if stdout != "" || !strings.Contains(stderr, "SEM3002") {
		t.Errorf("stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := run(t, "version", "--format=json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("version json: %v", err)
	}
	if payload.Tool != "paracell" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}
