package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing from the manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	ErrPackageNameMissing    = errors.New("missing [package].name")
	ErrManifestExists        = errors.New("paracell.toml already exists")
)

// Manifest is the decoded paracell.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Source  SourceSection  `toml:"source"`
	Check   CheckSection   `toml:"check"`

	// Path is the manifest location; Root is its directory. Neither is serialized.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type PackageSection struct {
	Name string `toml:"name"`
}

type SourceSection struct {
	Root string `toml:"root"`
}

// CheckSection holds defaults for `paracell check`; CLI flags override them.
type CheckSection struct {
	Jobs           int  `toml:"jobs,omitempty"`
	MaxDiagnostics int  `toml:"max_diagnostics,omitempty"`
	Cache          bool `toml:"cache"`
}

// DefaultSourceRoot is used when [source].root is absent.
const DefaultSourceRoot = "src"

// Default returns the manifest that `paracell init` writes.
func Default(name string) Manifest {
	return Manifest{
		Package: PackageSection{Name: name},
		Source:  SourceSection{Root: DefaultSourceRoot},
		Check:   CheckSection{Cache: true},
	}
}

// LoadManifest decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	m := Manifest{Check: CheckSection{Cache: true}}
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if m.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must be >= 0, got %d", path, m.Check.Jobs)
	}
	if m.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must be >= 0, got %d", path, m.Check.MaxDiagnostics)
	}
	if strings.TrimSpace(m.Source.Root) == "" {
		m.Source.Root = DefaultSourceRoot
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// Discover finds and loads the nearest manifest above startDir.
// ok is false when there is none.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	return m, true, err
}

// SourceDir resolves [source].root against the project root. The result must
// stay inside the project.
func (m *Manifest) SourceDir() (string, error) {
	root := strings.TrimSpace(m.Source.Root)
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [source].root %q: must be relative", root)
	}
	dir := filepath.Join(m.Root, filepath.Clean(filepath.FromSlash(root)))
	if !pathWithin(m.Root, dir) {
		return "", fmt.Errorf("invalid [source].root %q: escapes project root", root)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("invalid [source].root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [source].root %q: not a directory", root)
	}
	return dir, nil
}

// WriteManifest writes m to dir/paracell.toml, refusing to overwrite.
func WriteManifest(dir string, m Manifest) (string, error) {
	path := filepath.Join(dir, ManifestName)
	// #nosec G304 -- path is built from the user-chosen project directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrManifestExists)
		}
		return "", err
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	return path, f.Close()
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
