package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paracell/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), "[package]\nname = \"demo\"\n\n[check]\njobs = 3\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := project.Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Package.Name != "demo" || m.Check.Jobs != 3 {
		t.Errorf("manifest = %+v", m)
	}
	if !m.Check.Cache {
		t.Errorf("cache should default to true")
	}
	if m.Source.Root != project.DefaultSourceRoot {
		t.Errorf("source root = %q", m.Source.Root)
	}
	wantRoot, _ := filepath.Abs(root)
	if m.Root != wantRoot {
		t.Errorf("root = %q, want %q", m.Root, wantRoot)
	}
	dir, err := m.SourceDir()
	if err != nil || dir != filepath.Join(wantRoot, "src") {
		t.Errorf("SourceDir = %q, %v", dir, err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", project.ManifestName), "[package]\nname = \"app\"\n")
	got, ok, err := project.FindProjectRoot(filepath.Join(root, "app"))
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	if want, _ := filepath.Abs(filepath.Join(root, "app")); got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
		substr  string
	}{
		{"no package", "[source]\nroot = \"src\"\n", project.ErrPackageSectionMissing, ""},
		{"empty name", "[package]\nname = \"  \"\n", project.ErrPackageNameMissing, ""},
		{"unknown key", "[package]\nname = \"a\"\nedition = 2\n", nil, "unknown key"},
		{"negative jobs", "[package]\nname = \"a\"\n[check]\njobs = -1\n", nil, "jobs"},
		{"bad toml", "[package\n", nil, "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), project.ManifestName)
			writeFile(t, path, tc.content)
			_, err := project.LoadManifest(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if tc.substr != "" && !strings.Contains(err.Error(), tc.substr) {
				t.Errorf("err = %v, want substring %q", err, tc.substr)
			}
		})
	}
}

func TestSourceDirRejectsEscape(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, project.ManifestName)
	writeFile(t, path, "[package]\nname = \"a\"\n[source]\nroot = \"../elsewhere\"\n")
	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SourceDir(); err == nil || !strings.Contains(err.Error(), "escapes") {
		t.Fatalf("SourceDir err = %v", err)
	}
}

func TestWriteManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := project.Default("hello")
	want.Check.Jobs = 2
	path, err := project.WriteManifest(dir, want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := project.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Package != want.Package || got.Source != want.Source || got.Check != want.Check {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if _, err := project.WriteManifest(dir, want); !errors.Is(err, project.ErrManifestExists) {
		t.Errorf("second write err = %v", err)
	}
}

func TestCombineDependsOnSalt(t *testing.T) {
	var content project.Digest
	content[0] = 1
	a := project.Combine(content, []byte("v1"))
	b := project.Combine(content, []byte("v2"))
	if a == b {
		t.Fatalf("different salts gave equal digests")
	}
	if a != project.Combine(content, []byte("v1")) {
		t.Fatalf("Combine is not deterministic")
	}
}
