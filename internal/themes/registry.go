package themes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorsThemeName is the reserved theme pointing at the error bank folder.
const ErrorsThemeName = "Review my errors"

var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrThemeExists   = errors.New("theme already exists")
	ErrInvalidName   = errors.New("invalid theme name")
	ErrInvalidPath   = errors.New("invalid theme path")
)

// Theme is a named folder of quiz files.
type Theme struct {
	Name string
	Path string
}

// Registry maps theme names to folder paths, remembering insertion order.
// The zero value is an empty registry.
type Registry struct {
	order []string
	paths map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{paths: make(map[string]string)}
}

// Len returns the number of themes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns the folder path for name.
func (r *Registry) Get(name string) (string, bool) {
	p, ok := r.paths[name]
	return p, ok
}

// All returns the themes in insertion order.
func (r *Registry) All() []Theme {
	out := make([]Theme, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Theme{Name: name, Path: r.paths[name]})
	}
	return out
}

// Add registers name at path. Re-adding an existing name replaces its
// path and keeps its position.
func (r *Registry) Add(name, path string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := checkPath(path); err != nil {
		return err
	}
	if r.paths == nil {
		r.paths = make(map[string]string)
	}
	if _, exists := r.paths[name]; !exists {
		r.order = append(r.order, name)
	}
	r.paths[name] = path
	return nil
}

// Rename gives theme oldName the name newName, keeping its path and position.
func (r *Registry) Rename(oldName, newName string) error {
	path, ok := r.paths[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrThemeNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if err := checkName(newName); err != nil {
		return err
	}
	if _, taken := r.paths[newName]; taken {
		return fmt.Errorf("%w: %q", ErrThemeExists, newName)
	}

	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
			break
		}
	}
	delete(r.paths, oldName)
	r.paths[newName] = path
	return nil
}

// Delete removes name from the registry. The folder itself is untouched.
func (r *Registry) Delete(name string) error {
	if _, ok := r.paths[name]; !ok {
		return fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	delete(r.paths, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// checkName rejects names that could not be written back to a registry
// line and read again unchanged.
func checkName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w: %q has surrounding spaces", ErrInvalidName, name)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	case strings.Contains(name, separator):
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, separator)
	case strings.HasPrefix(name, "[") || strings.HasSuffix(name, "]"):
		return fmt.Errorf("%w: %q starts or ends with a bracket", ErrInvalidName, name)
	}
	return nil
}

func checkPath(path string) error {
	switch {
	case strings.TrimSpace(path) == "":
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	case path != strings.TrimSpace(path):
		return fmt.Errorf("%w: %q has surrounding spaces", ErrInvalidPath, path)
	case strings.ContainsAny(path, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidPath, path)
	case strings.Contains(path, separator):
		return fmt.Errorf("%w: %q contains %q", ErrInvalidPath, path, separator)
	}
	return nil
}
