package themes

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// separator splits name and path inside a registry line: [name]-[path].
const separator = "]-["

// MalformedLineError reports a registry line that was skipped.
type MalformedLineError struct {
	Line int // 1-based
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed registry line %d skipped: %q", e.Line, e.Text)
}

// Parse reads registry lines from rd. Blank lines are ignored; any other
// line that is not [name]-[path] is skipped and reported in warnings.
// A later line for an existing name replaces its path.
func Parse(rd io.Reader) (*Registry, []error, error) {
	reg := New()
	var warnings []error

	sc := bufio.NewScanner(rd)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, path, ok := parseLine(line)
		if !ok {
			warnings = append(warnings, &MalformedLineError{Line: lineNo, Text: line})
			continue
		}
		if err := reg.Add(name, path); err != nil {
			warnings = append(warnings, &MalformedLineError{Line: lineNo, Text: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, fmt.Errorf("read registry: %w", err)
	}
	return reg, warnings, nil
}

func parseLine(line string) (name, path string, ok bool) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") || len(line) < 2 {
		return "", "", false
	}
	parts := strings.Split(line[1:len(line)-1], separator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Load reads the registry file at path. A missing file yields an empty
// registry.
func Load(path string) (*Registry, []error, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// WriteTo writes one [name]-[path] line per theme in insertion order.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, t := range r.All() {
		fmt.Fprintf(&buf, "[%s%s%s]\n", t.Name, separator, t.Path)
	}
	return buf.WriteTo(w)
}

// Save rewrites the registry file at path.
func (r *Registry) Save(path string) error {
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// EnsureErrorsTheme creates the errors folder and registers it under
// ErrorsThemeName if missing. It reports whether the registry changed.
func EnsureErrorsTheme(r *Registry, errorsDir string) (bool, error) {
	if err := os.MkdirAll(errorsDir, 0o755); err != nil {
		return false, fmt.Errorf("create errors folder: %w", err)
	}
	if p, ok := r.Get(ErrorsThemeName); ok && p == errorsDir {
		return false, nil
	}
	if err := r.Add(ErrorsThemeName, errorsDir); err != nil {
		return false, err
	}
	return true, nil
}

// Store couples a registry with its file and rewrites the file after
// every mutation.
type Store struct {
	path string
	reg  *Registry
}

// Open loads the registry at path into a Store.
func Open(path string) (*Store, []error, error) {
	reg, warnings, err := Load(path)
	if err != nil {
		return nil, warnings, err
	}
	return &Store{path: path, reg: reg}, warnings, nil
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// Registry returns the in-memory registry. Mutate it through the Store
// so the file stays current.
func (s *Store) Registry() *Registry {
	return s.reg
}

// Add registers a theme and saves.
func (s *Store) Add(name, path string) error {
	if err := s.reg.Add(name, path); err != nil {
		return err
	}
	return s.reg.Save(s.path)
}

// Rename renames a theme and saves.
func (s *Store) Rename(oldName, newName string) error {
	if err := s.reg.Rename(oldName, newName); err != nil {
		return err
	}
	return s.reg.Save(s.path)
}

// Delete removes a theme and saves.
func (s *Store) Delete(name string) error {
	if err := s.reg.Delete(name); err != nil {
		return err
	}
	return s.reg.Save(s.path)
}

// EnsureErrorsTheme registers the errors folder and saves if it changed.
func (s *Store) EnsureErrorsTheme(errorsDir string) error {
	changed, err := EnsureErrorsTheme(s.reg, errorsDir)
	if err != nil || !changed {
		return err
	}
	return s.reg.Save(s.path)
}

// ResolveFolder expands a leading ~, makes path absolute, and checks
// that it is a directory.
func ResolveFolder(path string) (string, error) {
	if path == "" {
		return "", errors.New("enter a folder path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("folder not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a folder", abs)
	}
	return abs, nil
}
