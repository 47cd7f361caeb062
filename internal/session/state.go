package session

import (
	"time"

	"github.com/abhisek/quizbox/internal/evaluate"
	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/themes"
)

// Mode distinguishes a regular quiz from an error review.
type Mode string

const (
	ModePlay   Mode = "play"
	ModeReview Mode = "review"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // Waiting for an answer
	PhaseFeedback                     // Showing answer feedback
	PhaseSummary                      // All questions answered or quit
)

// SessionState tracks the runtime state of an active session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	Mode Mode

	// ThemeName is the theme the questions were drawn from.
	ThemeName string

	// Sources lists the quiz files played, or the reviewed artifact.
	Sources []string

	// Artifact is the error artifact under review (review mode only).
	Artifact string

	// Questions is the ordered list of questions to ask.
	Questions []question.Question

	// Index points at the current question.
	Index int

	// Tally counts attempts and collects missed records.
	Tally evaluate.Tally

	// Answers logs every answered question for history.
	Answers []store.AnswerRecord

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// LastAnswer is the most recent parsed answer.
	LastAnswer evaluate.Answer

	// Streak counts consecutive correct answers; BestStreak is its peak.
	Streak     int
	BestStreak int

	// StartTime is when the session began.
	StartTime time.Time

	// Phase is the current session phase.
	Phase SessionPhase

	now func() time.Time
}

// NewSessionState creates a session over qs. An empty question list
// starts directly in PhaseSummary.
func NewSessionState(sessionID string, mode Mode, themeName string, sources []string, qs []question.Question) *SessionState {
	s := &SessionState{
		SessionID: sessionID,
		Mode:      mode,
		ThemeName: themeName,
		Sources:   sources,
		Questions: qs,
		StartTime: time.Now(),
		Phase:     PhaseActive,
		now:       time.Now,
	}
	if len(qs) == 0 {
		s.Phase = PhaseSummary
	}
	return s
}

// NewReviewState creates a review session over the records of one
// error artifact.
func NewReviewState(sessionID, artifact string, qs []question.Question) *SessionState {
	s := NewSessionState(sessionID, ModeReview, themes.ErrorsThemeName, []string{artifact}, qs)
	s.Artifact = artifact
	return s
}

// CurrentQuestion returns the question awaiting an answer, or nil when
// the session is over.
func CurrentQuestion(state *SessionState) *question.Question {
	if state.Index < 0 || state.Index >= len(state.Questions) {
		return nil
	}
	return &state.Questions[state.Index]
}

// Done reports whether every question has been answered.
func Done(state *SessionState) bool {
	return state.Index >= len(state.Questions)
}

// Remaining returns the questions not yet answered.
func Remaining(state *SessionState) []question.Question {
	if Done(state) {
		return nil
	}
	return state.Questions[state.Index:]
}
