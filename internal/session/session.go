package session

import (
	"errors"

	"github.com/abhisek/quizbox/internal/evaluate"
)

// ErrNotAnswering is returned when an answer arrives outside PhaseActive.
var ErrNotAnswering = errors.New("session is not waiting for an answer")

// HandleAnswer parses input against the current question, records the
// result, and moves the session to PhaseFeedback. Input that does not
// parse returns an error wrapping evaluate.ErrInvalidInput and leaves
// the state untouched so the caller can prompt again.
func HandleAnswer(state *SessionState, input string) (bool, error) {
	q := CurrentQuestion(state)
	if q == nil || state.Phase != PhaseActive {
		return false, ErrNotAnswering
	}

	answer, err := evaluate.ParseAnswer(*q, input)
	if err != nil {
		return false, err
	}

	correct := state.Tally.Record(*q, answer)
	state.LastAnswer = answer
	state.LastAnswerCorrect = correct
	recordStreak(state, correct)
	state.Answers = append(state.Answers, answerRecord(*q, correct, state.now()))
	state.Phase = PhaseFeedback
	return correct, nil
}

// Advance leaves the feedback phase and moves to the next question.
// It returns false once the last question has been answered.
func Advance(state *SessionState) bool {
	if state.Phase == PhaseFeedback {
		state.Index++
	}
	if Done(state) {
		state.Phase = PhaseSummary
		return false
	}
	state.Phase = PhaseActive
	return true
}

// Quit ends the session early. Unanswered questions are not counted.
func Quit(state *SessionState) {
	if state.Phase == PhaseFeedback {
		state.Index++
	}
	state.Phase = PhaseSummary
}
