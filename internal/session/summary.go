package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/store"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Mode           Mode
	ThemeName      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	BestStreak     int

	// Skipped counts questions left unanswered by quitting early.
	Skipped int

	// Missed holds the records answered incorrectly.
	Missed []question.Question

	// Artifact is the error artifact written (play) or reviewed (review).
	// Empty when a play session had no misses.
	Artifact string

	// Cleared is true when a review emptied its artifact.
	Cleared bool
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	var accuracy float64
	if state.Tally.Attempted > 0 {
		accuracy = float64(state.Tally.Correct) / float64(state.Tally.Attempted)
	}
	return &SessionSummary{
		SessionID:      state.SessionID,
		Mode:           state.Mode,
		ThemeName:      state.ThemeName,
		Duration:       state.now().Sub(state.StartTime),
		TotalQuestions: state.Tally.Attempted,
		TotalCorrect:   state.Tally.Correct,
		Accuracy:       accuracy,
		BestStreak:     state.BestStreak,
		Skipped:        len(Remaining(state)),
		Missed:         state.Tally.Missed,
		Artifact:       state.Artifact,
	}
}

// ErrorBank stores missed records. *errorbank.Bank satisfies it.
type ErrorBank interface {
	Save(missed []question.Question) (string, error)
	Update(name string, remaining []question.Question) error
}

// Finish builds the summary and persists the session outcome. A play
// session saves its misses as a new error artifact. A review session
// rewrites its artifact with the records still missed plus any it never
// reached. History is optional; a nil repo skips it. Persistence errors
// are joined and returned alongside the summary.
func Finish(ctx context.Context, state *SessionState, bank ErrorBank, history store.HistoryRepo) (*SessionSummary, error) {
	state.Phase = PhaseSummary
	sum := BuildSummary(state)

	var errs []error
	switch state.Mode {
	case ModePlay:
		name, err := bank.Save(state.Tally.Missed)
		if err != nil {
			errs = append(errs, fmt.Errorf("save missed questions: %w", err))
		}
		sum.Artifact = name
	case ModeReview:
		keep := make([]question.Question, 0, len(state.Tally.Missed)+sum.Skipped)
		keep = append(keep, state.Tally.Missed...)
		keep = append(keep, Remaining(state)...)
		if err := bank.Update(state.Artifact, keep); err != nil {
			errs = append(errs, fmt.Errorf("update %s: %w", state.Artifact, err))
		} else {
			sum.Cleared = len(keep) == 0
		}
	}

	if history != nil && state.Tally.Attempted > 0 {
		if err := history.AppendSession(ctx, sessionRecord(state, sum)); err != nil {
			errs = append(errs, fmt.Errorf("record history: %w", err))
		}
	}
	return sum, errors.Join(errs...)
}

func sessionRecord(state *SessionState, sum *SessionSummary) store.SessionRecord {
	return store.SessionRecord{
		ID:            state.SessionID,
		Mode:          string(state.Mode),
		Theme:         state.ThemeName,
		Sources:       state.Sources,
		Total:         sum.TotalQuestions,
		Correct:       sum.TotalCorrect,
		ErrorArtifact: sum.Artifact,
		StartedAt:     state.StartTime,
		FinishedAt:    state.StartTime.Add(sum.Duration),
		Answers:       state.Answers,
	}
}

func answerRecord(q question.Question, correct bool, at time.Time) store.AnswerRecord {
	return store.AnswerRecord{
		Prompt:     q.Prompt(),
		Kind:       string(q.Kind),
		Correct:    correct,
		AnsweredAt: at,
	}
}
