package question

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is wrapped by every error describing a record that
// does not satisfy the question invariants.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError reports a malformed record at a position in a quiz file.
type RecordError struct {
	Index int // 0-based position in the JSON array
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index+1, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}

// Validate checks the invariants of whichever variant q holds.
func (q Question) Validate() error {
	switch q.Kind {
	case KindMultipleChoice:
		if q.MultipleChoice == nil {
			return malformed("multiple-choice record has no body")
		}
		return q.MultipleChoice.Validate()
	case KindMatching:
		if q.Matching == nil {
			return malformed("matching record has no body")
		}
		return q.Matching.Validate()
	default:
		return malformed("unknown record type %q", q.Kind)
	}
}

// Validate requires a prompt, at least one option, and at least one
// option marked correct.
func (mc *MultipleChoice) Validate() error {
	if strings.TrimSpace(mc.Prompt) == "" {
		return malformed("empty prompt")
	}
	if len(mc.Options) == 0 {
		return malformed("no options")
	}
	for i, o := range mc.Options {
		if strings.TrimSpace(o.Text) == "" {
			return malformed("option %d has no text", i+1)
		}
	}
	if len(mc.CorrectIndices()) == 0 {
		return malformed("no option marked correct")
	}
	return nil
}

// Validate requires the answer map to be a bijection from categories to
// option indices.
func (m *Matching) Validate() error {
	if strings.TrimSpace(m.Prompt) == "" {
		return malformed("empty prompt")
	}
	if len(m.Categories) == 0 {
		return malformed("no categories")
	}
	if len(m.Categories) != len(m.Options) {
		return malformed("%d categories but %d options", len(m.Categories), len(m.Options))
	}

	seenCat := make(map[string]bool, len(m.Categories))
	for _, c := range m.Categories {
		if seenCat[c] {
			return malformed("duplicate category %q", c)
		}
		seenCat[c] = true
	}

	if len(m.Answer) != len(m.Categories) {
		return malformed("answer covers %d of %d categories", len(m.Answer), len(m.Categories))
	}
	usedOpt := make(map[int]string, len(m.Answer))
	for cat, idx := range m.Answer {
		if !seenCat[cat] {
			return malformed("answer names unknown category %q", cat)
		}
		if idx < 0 || idx >= len(m.Options) {
			return malformed("category %q maps to option %d out of range", cat, idx)
		}
		if other, dup := usedOpt[idx]; dup {
			return malformed("option %d used by both %q and %q", idx, other, cat)
		}
		usedOpt[idx] = cat
	}
	return nil
}
