package session

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/question"
	sess "github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// renderQuestionView renders the active question and the answer input.
func (s *SessionScreen) renderQuestionView(width int) string {
	q := sess.CurrentQuestion(s.state)
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")
	b.WriteString(renderQuestion(*q, layout.ContentWidth(width)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(answerHint(*q)))

	return layout.Block(b.String(), width)
}

func (s *SessionScreen) renderProgress(width int) string {
	state := s.state
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d", state.Index+1),
		state.Index, len(state.Questions),
		layout.ContentWidth(width)-12,
	)
	score := lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("  ✓ %d", state.Tally.Correct))
	return bar.View() + score
}

// renderQuestion renders the prompt and numbered options of q.
func renderQuestion(q question.Question, width int) string {
	var b strings.Builder
	b.WriteString(theme.Prompt.Width(width).Render(q.Prompt()))
	b.WriteString("\n\n")

	switch q.Kind {
	case question.KindMultipleChoice:
		for i, opt := range q.MultipleChoice.Options {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, opt.Text)))
			b.WriteString("\n")
		}

	case question.KindMatching:
		m := q.Matching
		b.WriteString(theme.Hint.Render("Categories"))
		b.WriteString("\n")
		for i, c := range m.Categories {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %c. %s", 'A'+rune(i%26), c)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Options"))
		b.WriteString("\n")
		for i, opt := range m.Options {
			b.WriteString(theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, opt)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func answerHint(q question.Question) string {
	if q.Kind == question.KindMatching {
		return fmt.Sprintf("Enter %d option numbers, one per category in order (e.g. 2 1 3)", len(q.Matching.Categories))
	}
	return "Enter every correct option number, separated by commas"
}

// correctAnswer describes the expected answer of q.
func correctAnswer(q question.Question) string {
	switch q.Kind {
	case question.KindMultipleChoice:
		var parts []string
		for _, i := range q.MultipleChoice.CorrectIndices() {
			parts = append(parts, fmt.Sprintf("%d) %s", i+1, q.MultipleChoice.Options[i].Text))
		}
		return strings.Join(parts, ", ")
	case question.KindMatching:
		m := q.Matching
		parts := make([]string, 0, len(m.Categories))
		for _, c := range m.Categories {
			parts = append(parts, fmt.Sprintf("%s → %s", c, m.Options[m.Answer[c]]))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// givenAnswer describes the parsed answer the user submitted.
func givenAnswer(q question.Question, state *sess.SessionState) string {
	a := state.LastAnswer
	switch q.Kind {
	case question.KindMultipleChoice:
		idx := append([]int(nil), a.Choices...)
		sort.Ints(idx)
		parts := make([]string, len(idx))
		for i, v := range idx {
			parts[i] = fmt.Sprintf("%d", v+1)
		}
		return strings.Join(parts, ", ")
	case question.KindMatching:
		m := q.Matching
		parts := make([]string, 0, len(m.Categories))
		for _, c := range m.Categories {
			parts = append(parts, fmt.Sprintf("%s → %s", c, m.Options[a.Mapping[c]]))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// renderFeedback shows whether the last answer was right, the expected
// answer, and the record's explanation.
func (s *SessionScreen) renderFeedback(width int) string {
	state := s.state
	q := sess.CurrentQuestion(state)
	if q == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")
	b.WriteString(theme.Prompt.Width(cw).Render(q.Prompt()))
	b.WriteString("\n\n")

	if state.LastAnswerCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
		if sess.StreakMilestone(state) {
			b.WriteString("  " + theme.Title.Render(fmt.Sprintf("%d in a row!", state.Streak)))
		}
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("You answered: " + givenAnswer(*q, state)))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cw).Render("Correct answer: " + correctAnswer(*q)))
	}

	if exp := q.Explanation(); exp != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Explanation.Width(cw).Render(exp))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press any key to continue"))
	return layout.Block(b.String(), width)
}

func renderQuitConfirm(width, height int, state *sess.SessionState) string {
	msg := "End this session now?\n\nAnswered questions are kept."
	if state.Mode == sess.ModeReview {
		msg += "\nUnanswered questions stay in the error set."
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg + "\n\n(y/n)")
}

func renderSaving(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\nSaving results...")
}
