package evaluate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/quizbox/internal/question"
)

// ErrInvalidInput means the respondent's text could not be read as an
// answer to the question. It is not an attempt.
var ErrInvalidInput = errors.New("invalid input")

// Answer is a respondent's answer to one question.
type Answer struct {
	// Choices holds 0-based option indices for a multiple-choice question.
	Choices []int

	// Mapping pairs each category with a 0-based option index for a
	// matching question.
	Mapping map[string]int
}

// ChoiceAnswer builds a multiple-choice answer from 0-based indices.
func ChoiceAnswer(idx ...int) Answer {
	return Answer{Choices: idx}
}

// MappingAnswer builds a matching answer.
func MappingAnswer(m map[string]int) Answer {
	return Answer{Mapping: m}
}

// ParseAnswer reads typed input for q.
//
// Multiple choice: 1-based option numbers separated by commas or spaces,
// e.g. "1,3". Repeats collapse.
// Matching: exactly one 1-based option number per category, in category
// order, e.g. "2 1 3".
//
// Empty, non-numeric, out-of-range, or wrong-cardinality input returns an
// error wrapping ErrInvalidInput.
func ParseAnswer(q question.Question, input string) (Answer, error) {
	nums, err := parseNumbers(input)
	if err != nil {
		return Answer{}, err
	}

	switch q.Kind {
	case question.KindMultipleChoice:
		n := len(q.MultipleChoice.Options)
		seen := make(map[int]bool, len(nums))
		var choices []int
		for _, v := range nums {
			if v < 1 || v > n {
				return Answer{}, invalid("option %d is not between 1 and %d", v, n)
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			choices = append(choices, v-1)
		}
		return ChoiceAnswer(choices...), nil

	case question.KindMatching:
		m := q.Matching
		if len(nums) != len(m.Categories) {
			return Answer{}, invalid("expected %d numbers, one per category, got %d", len(m.Categories), len(nums))
		}
		mapping := make(map[string]int, len(nums))
		for i, v := range nums {
			if v < 1 || v > len(m.Options) {
				return Answer{}, invalid("option %d is not between 1 and %d", v, len(m.Options))
			}
			mapping[m.Categories[i]] = v - 1
		}
		return MappingAnswer(mapping), nil

	default:
		return Answer{}, fmt.Errorf("%w: unsupported question kind %q", ErrInvalidInput, q.Kind)
	}
}

// parseNumbers splits on commas and whitespace.
func parseNumbers(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, invalid("no answer given")
	}

	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, invalid("%q is not a number", f)
		}
		nums = append(nums, v)
	}
	return nums, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
