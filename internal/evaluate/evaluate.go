package evaluate

import (
	"fmt"

	"github.com/abhisek/quizbox/internal/question"
)

// Check reports whether a answers q correctly.
//
// Multiple choice requires the chosen index set to equal the set of
// correct indices exactly; a subset or superset is wrong. Matching
// requires the chosen mapping to equal the stored answer exactly.
func Check(q question.Question, a Answer) bool {
	switch q.Kind {
	case question.KindMultipleChoice:
		if q.MultipleChoice == nil {
			return false
		}
		return checkMultipleChoice(q.MultipleChoice, a.Choices)
	case question.KindMatching:
		if q.Matching == nil {
			return false
		}
		return checkMatching(q.Matching, a.Mapping)
	default:
		return false
	}
}

func checkMultipleChoice(mc *question.MultipleChoice, chosen []int) bool {
	if len(chosen) == 0 {
		return false
	}
	want := make(map[int]bool)
	for _, i := range mc.CorrectIndices() {
		want[i] = true
	}
	got := make(map[int]bool, len(chosen))
	for _, i := range chosen {
		got[i] = true
	}
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !want[i] {
			return false
		}
	}
	return true
}

func checkMatching(m *question.Matching, chosen map[string]int) bool {
	if len(chosen) != len(m.Answer) {
		return false
	}
	for cat, idx := range m.Answer {
		got, ok := chosen[cat]
		if !ok || got != idx {
			return false
		}
	}
	return true
}

// Tally accumulates results across a sequence of answered questions.
// The zero value is ready to use.
type Tally struct {
	Attempted int
	Correct   int

	// Missed holds the records answered incorrectly, unmodified, in the
	// order they were answered.
	Missed []question.Question
}

// Record checks a against q, updates the tally, and returns whether the
// answer was correct.
func (t *Tally) Record(q question.Question, a Answer) bool {
	t.Attempted++
	if Check(q, a) {
		t.Correct++
		return true
	}
	t.Missed = append(t.Missed, q)
	return false
}

// Result is the outcome of evaluating a whole quiz.
type Result struct {
	Total   int
	Correct int
	Missed  []question.Question
}

// Evaluate checks answers[i] against qs[i] for every question.
func Evaluate(qs []question.Question, answers []Answer) (Result, error) {
	if len(qs) != len(answers) {
		return Result{}, fmt.Errorf("evaluate: %d questions but %d answers", len(qs), len(answers))
	}
	var t Tally
	for i, q := range qs {
		t.Record(q, answers[i])
	}
	return Result{Total: t.Attempted, Correct: t.Correct, Missed: t.Missed}, nil
}

// Retain returns the records from qs that answers still gets wrong. It is
// used when reviewing an error artifact: correctly answered records drop out.
func Retain(qs []question.Question, answers []Answer) ([]question.Question, error) {
	res, err := Evaluate(qs, answers)
	if err != nil {
		return nil, err
	}
	return res.Missed, nil
}
