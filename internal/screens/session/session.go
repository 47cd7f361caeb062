package session

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/evaluate"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/summary"
	sess "github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a play or review session.
type SessionScreen struct {
	env   *screen.Env
	state *sess.SessionState
	input components.TextInput

	showingQuitConfirm bool
	finishing          bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a SessionScreen over a prepared state.
func New(env *screen.Env, state *sess.SessionState) *SessionScreen {
	return &SessionScreen{
		env:   env,
		state: state,
		input: newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Your answer", "e.g. 1,3", 0)
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.state.Phase == sess.PhaseSummary {
		return s.endCmd()
	}
	return s.input.Init()
}

func (s *SessionScreen) Title() string {
	if s.state.Mode == sess.ModeReview {
		return "Review"
	}
	return "Quiz"
}

func (s *SessionScreen) Status() string {
	return s.state.ThemeName
}

func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase == sess.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEndMsg:
		return s.handleSessionEnd()

	case sessionFinishedMsg:
		return s.handleFinished(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state.Phase == sess.PhaseActive && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.finishing {
		return s, nil
	}
	key := msg.String()

	if s.showingQuitConfirm {
		switch strings.ToLower(key) {
		case "y":
			s.showingQuitConfirm = false
			sess.Quit(s.state)
			return s, s.endCmd()
		case "n", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseFeedback:
		if !sess.Advance(s.state) {
			return s, s.endCmd()
		}
		s.input = newAnswerInput()
		return s, s.input.Init()

	case sess.PhaseActive:
		if key == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit evaluates the typed answer. Input that does not parse is
// rejected in place and never counts as an attempt.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	correct, err := sess.HandleAnswer(s.state, s.input.Value())
	if err != nil {
		if errors.Is(err, evaluate.ErrInvalidInput) {
			s.input.Reject(strings.TrimPrefix(err.Error(), evaluate.ErrInvalidInput.Error()+": "))
			return s, nil
		}
		s.env.Log.Warn("answer rejected", "session", s.state.SessionID, "err", err)
		return s, nil
	}
	s.env.Log.Debug("answer", "session", s.state.SessionID, "index", s.state.Index, "correct", correct)
	return s, nil
}

func (s *SessionScreen) endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}

// handleSessionEnd persists the outcome: misses go to the error bank
// and the session is appended to history.
func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.finishing {
		return s, nil
	}
	s.finishing = true
	state, env := s.state, s.env
	return s, func() tea.Msg {
		sum, err := sess.Finish(context.Background(), state, env.Bank, env.History)
		return sessionFinishedMsg{Summary: sum, Err: err}
	}
}

func (s *SessionScreen) handleFinished(msg sessionFinishedMsg) (screen.Screen, tea.Cmd) {
	sum := msg.Summary
	if msg.Err != nil {
		s.env.Log.Warn("session persistence failed", "session", s.state.SessionID, "err", msg.Err)
	}
	s.env.Log.Info("session end", "session", sum.SessionID, "mode", sum.Mode,
		"correct", sum.TotalCorrect, "answered", sum.TotalQuestions, "artifact", sum.Artifact)
	return s, router.Cmd(router.ReplaceScreenMsg{Screen: summary.New(sum, msg.Err)})
}

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height, s.state)
	}
	if s.finishing || s.state.Phase == sess.PhaseSummary {
		return renderSaving(width)
	}
	if s.state.Phase == sess.PhaseFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}
