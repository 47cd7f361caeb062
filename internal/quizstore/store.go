package quizstore

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/quizbox/internal/question"
)

var (
	ErrQuizExists       = errors.New("quiz file already exists")
	ErrInvalidQuizName  = errors.New("invalid quiz name")
	ErrInvalidSelection = errors.New("invalid selection")
)

// File is one quiz file in a theme folder.
type File struct {
	Name string
	Path string

	// Count is the number of valid records, or -1 if the file could not
	// be decoded (see Err).
	Count int
	Err   error
}

// List returns the *.json files in dir, sorted by name, with their
// record counts.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		f := File{Name: e.Name(), Path: filepath.Join(dir, e.Name())}
		quiz, err := question.LoadFile(f.Path)
		if err != nil {
			f.Count = -1
			f.Err = err
		} else {
			f.Count = len(quiz.Questions)
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Collect concatenates the valid records of files in order. Files that
// cannot be read and records that are malformed are skipped and
// returned as warnings.
func Collect(files []File) ([]question.Question, []error) {
	var qs []question.Question
	var warnings []error
	for _, f := range files {
		quiz, err := question.LoadFile(f.Path)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		for _, rerr := range quiz.Skipped {
			warnings = append(warnings, fmt.Errorf("%s: %w", f.Name, rerr))
		}
		qs = append(qs, quiz.Questions...)
	}
	return qs, warnings
}

// Shuffle returns a shuffled copy of qs. The input is not modified.
func Shuffle(qs []question.Question, r *rand.Rand) []question.Question {
	shuffled := make([]question.Question, len(qs))
	copy(shuffled, qs)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Create writes qs to dir/name.json and returns the path. It never
// overwrites an existing file.
func Create(dir, name string, qs []question.Question) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuizName, name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("quiz folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("quiz folder: %s is not a directory", dir)
	}

	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrQuizExists, path)
	}
	if err := question.SaveFile(path, qs); err != nil {
		return "", err
	}
	return path, nil
}

// ParseSelection reads comma-separated 1-based picks out of n items and
// returns 0-based indices in the order given, dropping repeats.
func ParseSelection(input string, n int) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
	}
	seen := make(map[int]bool, len(fields))
	var out []int
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, f)
		}
		if v < 1 || v > n {
			return nil, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, v, n)
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v-1)
		}
	}
	return out, nil
}
