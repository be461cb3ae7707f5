package modules

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no search path holds a manifest for a module.
var ErrNotFound = errors.New("module not found")

// ConflictError reports a loaded module whose version does not satisfy a
// requirement.
type ConflictError struct {
	Module     string
	Version    string
	Constraint string
	RequiredBy string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("module %s %s does not satisfy %q required by %s", e.Module, e.Version, e.Constraint, e.RequiredBy)
}

// CycleError reports modules that require each other.
type CycleError struct {
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("module dependency cycle detected: %s", strings.Join(e.Stack, " -> "))
}

// Loader finds manifests on a list of search paths and loads them with
// their requirements.
type Loader struct {
	paths  []string
	loaded map[string]*Manifest
	logger *slog.Logger
}

// NewLoader creates a loader that searches paths in order. logger may be nil.
func NewLoader(paths []string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		paths:  paths,
		loaded: make(map[string]*Manifest),
		logger: logger,
	}
}

// Find returns the first manifest file for name on the search paths.
func (l *Loader) Find(name string) (string, error) {
	for _, dir := range l.paths {
		for _, ext := range Extensions {
			path := filepath.Join(dir, name+ext)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("stat %s: %w", path, err)
			}
		}
	}
	return "", fmt.Errorf("%w: %s (searched %s)", ErrNotFound, name, strings.Join(l.paths, string(os.PathListSeparator)))
}

// Load loads name and everything it requires. The result lists
// dependencies before the modules that need them, name last. Manifests are
// read from disk once per Loader.
func (l *Loader) Load(name string) ([]*Manifest, error) {
	var order []*Manifest
	if err := l.load(name, nil, make(map[string]bool), &order); err != nil {
		return nil, err
	}
	return order, nil
}

// Loaded returns a module loaded earlier.
func (l *Loader) Loaded(name string) (*Manifest, bool) {
	m, ok := l.loaded[name]
	return m, ok
}

func (l *Loader) load(name string, stack []string, done map[string]bool, order *[]*Manifest) error {
	for i, s := range stack {
		if s == name {
			cycle := append(append([]string{}, stack[i:]...), name)
			return &CycleError{Stack: cycle}
		}
	}
	if done[name] {
		return nil
	}

	m, ok := l.loaded[name]
	if !ok {
		path, err := l.Find(name)
		if err != nil {
			return err
		}
		m, err = LoadManifest(path)
		if err != nil {
			return err
		}
		if m.Name != name {
			return fmt.Errorf("%s: manifest declares module %q, expected %q", path, m.Name, name)
		}
		l.logger.Debug("module manifest loaded", "module", name, "version", m.Version, "path", path)
		l.loaded[name] = m
	}

	stack = append(stack, name)

	deps := make([]string, 0, len(m.Requires))
	for dep := range m.Requires {
		deps = append(deps, dep)
	}
	sort.Strings(deps)

	for _, dep := range deps {
		if err := l.load(dep, stack, done, order); err != nil {
			return err
		}
		if err := checkRequirement(l.loaded[dep], m.Requires[dep], name); err != nil {
			return err
		}
	}

	done[name] = true
	*order = append(*order, m)
	return nil
}

func checkRequirement(dep *Manifest, expr, requiredBy string) error {
	c, err := parseConstraint(expr)
	if err != nil {
		return fmt.Errorf("%s: requirement %s %q: %w", requiredBy, dep.Name, expr, err)
	}
	if !c.Check(dep.SemVer()) {
		return &ConflictError{
			Module:     dep.Name,
			Version:    dep.Version,
			Constraint: c.String(),
			RequiredBy: requiredBy,
		}
	}
	return nil
}
