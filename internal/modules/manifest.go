// Package modules loads wu module manifests and imports them into a symbol
// table as foreign modules and method registries.
package modules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Format is a manifest file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Extensions lists manifest file extensions in search order.
var Extensions = []string{".toml", ".yaml", ".yml"}

// Manifest describes a module: what it exports, which methods it adds to
// which types, and which other modules it needs.
type Manifest struct {
	Name     string                       `toml:"name" yaml:"name"`
	Version  string                       `toml:"version" yaml:"version"`
	Requires map[string]string            `toml:"requires" yaml:"requires"` // module name -> semver constraint
	Exports  map[string]string            `toml:"exports" yaml:"exports"`   // name -> type
	Methods  map[string]map[string]string `toml:"methods" yaml:"methods"`   // type id -> method -> type

	// Path is the file the manifest was read from, if any.
	Path string `toml:"-" yaml:"-"`

	version *semver.Version
}

// SemVer returns the parsed version. It is nil until Validate succeeds.
func (m *Manifest) SemVer() *semver.Version {
	return m.version
}

// Validate checks required fields and parses the version and constraints.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("manifest %s: missing name", m.describe())
	}
	if m.Version == "" {
		return fmt.Errorf("manifest %s: missing version", m.describe())
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return fmt.Errorf("manifest %s: version %q: %w", m.describe(), m.Version, err)
	}
	m.version = v

	for dep, expr := range m.Requires {
		if _, err := parseConstraint(expr); err != nil {
			return fmt.Errorf("manifest %s: requirement %s %q: %w", m.describe(), dep, expr, err)
		}
	}
	return nil
}

func (m *Manifest) describe() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Path != "" {
		return m.Path
	}
	return "<unnamed>"
}

// DetectFormat picks the manifest format from a file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(content []byte, format Format) (*Manifest, error) {
	m := &Manifest{}

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(content)).Decode(m)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown manifest key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(content, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

func parseConstraint(expr string) (*semver.Constraints, error) {
	if strings.TrimSpace(expr) == "" {
		return semver.NewConstraint(">=0.0.0")
	}
	return semver.NewConstraint(expr)
}
