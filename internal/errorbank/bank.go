// Package errorbank stores the questions missed in past sessions as a
// rotating set of JSON artifacts in one folder.
//
// Artifacts are named MyError%06d.json with a number one above the
// largest ever present, so numeric order is creation order and a new
// name never reuses an evicted one. Older two-digit names are ordered
// by their number alongside the new ones.
package errorbank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/quizbox/internal/question"
)

const (
	// DefaultCapacity is the number of artifacts kept before eviction.
	DefaultCapacity = 10

	artifactPrefix = "MyError"
	artifactExt    = ".json"
)

// ErrNotArtifact is returned for names that are not error-bank artifacts.
var ErrNotArtifact = errors.New("not an error bank artifact")

// Bank is a folder of error artifacts.
type Bank struct {
	dir      string
	capacity int
}

// Option configures a Bank.
type Option func(*Bank)

// WithCapacity overrides DefaultCapacity. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(b *Bank) {
		if n >= 1 {
			b.capacity = n
		}
	}
}

// New returns a Bank rooted at dir. The folder is created on first Save.
func New(dir string, opts ...Option) *Bank {
	b := &Bank{dir: dir, capacity: DefaultCapacity}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Dir returns the bank folder.
func (b *Bank) Dir() string {
	return b.dir
}

// Capacity returns the maximum number of artifacts kept.
func (b *Bank) Capacity() int {
	return b.capacity
}

// Save writes missed as a new artifact and returns its name. When the
// bank is full the oldest artifacts are deleted first. An empty missed
// list writes nothing and returns "".
func (b *Bank) Save(missed []question.Question) (string, error) {
	if len(missed) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create error bank: %w", err)
	}

	names, err := b.names()
	if err != nil {
		return "", err
	}

	// Number before evicting so an emptied bank does not restart at 1.
	next := 1
	if len(names) > 0 {
		last, _ := artifactNumber(names[len(names)-1])
		next = last + 1
	}

	for len(names) >= b.capacity {
		if err := os.Remove(filepath.Join(b.dir, names[0])); err != nil {
			return "", fmt.Errorf("evict %s: %w", names[0], err)
		}
		names = names[1:]
	}
	name := artifactName(next)

	if err := question.SaveFile(filepath.Join(b.dir, name), missed); err != nil {
		return "", err
	}
	return name, nil
}

// List returns artifact names, newest first.
func (b *Bank) List() ([]string, error) {
	names, err := b.names()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}

// Len returns the number of artifacts in the bank.
func (b *Bank) Len() (int, error) {
	names, err := b.names()
	return len(names), err
}

// Load decodes one artifact.
func (b *Bank) Load(name string) (question.Quiz, error) {
	if _, ok := artifactNumber(name); !ok {
		return question.Quiz{}, fmt.Errorf("%w: %q", ErrNotArtifact, name)
	}
	return question.LoadFile(filepath.Join(b.dir, name))
}

// Update replaces the content of an artifact after a review. When
// nothing remains the artifact is deleted.
func (b *Bank) Update(name string, remaining []question.Question) error {
	if _, ok := artifactNumber(name); !ok {
		return fmt.Errorf("%w: %q", ErrNotArtifact, name)
	}
	path := filepath.Join(b.dir, name)
	if len(remaining) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
		return nil
	}
	return question.SaveFile(path, remaining)
}

// names returns artifact names oldest first, ordered by number. A
// missing folder is an empty bank.
func (b *Bank) names() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read error bank: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := artifactNumber(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, _ := artifactNumber(names[i])
		c, _ := artifactNumber(names[j])
		if a != c {
			return a < c
		}
		return names[i] < names[j]
	})
	return names, nil
}

func artifactName(n int) string {
	return fmt.Sprintf("%s%06d%s", artifactPrefix, n, artifactExt)
}

// artifactNumber parses the counter out of an artifact name. Names from
// older versions (MyError01.json) are accepted too.
func artifactNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, artifactPrefix) || !strings.HasSuffix(name, artifactExt) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, artifactPrefix), artifactExt)
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
