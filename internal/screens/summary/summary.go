package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// maxListedMisses caps the missed prompts listed on screen.
const maxListedMisses = 8

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
	err     error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. err reports a failure to save the
// error artifact or the history record.
func New(summary *session.SessionSummary, err error) *SummaryScreen {
	return &SummaryScreen{summary: summary, err: err}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Cmd(router.PopToRootMsg{})
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	if sum.Mode == session.ModeReview {
		b.WriteString(theme.Title.Render("Review complete!"))
	} else {
		b.WriteString(theme.Title.Render("Quiz complete!"))
	}
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d/%d        Accuracy: %.0f%%",
		sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100)))
	if sum.BestStreak >= 3 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("Best streak: %d in a row", sum.BestStreak)))
	}
	if sum.Skipped > 0 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d questions not answered", sum.Skipped)))
	}
	b.WriteString("\n\n")

	b.WriteString(s.renderOutcome())

	if len(sum.Missed) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Missed"))
		b.WriteString("\n")
		for i, q := range sum.Missed {
			if i == maxListedMisses {
				b.WriteString(theme.Hint.Render(fmt.Sprintf("  … and %d more", len(sum.Missed)-i)))
				b.WriteString("\n")
				break
			}
			b.WriteString(theme.Incorrect.Render("  ✗ ") + theme.Body.Render(firstLine(q.Prompt())))
			b.WriteString("\n")
		}
	}

	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render("Could not save results: " + s.err.Error()))
	}

	return layout.Block(b.String(), width)
}

// renderOutcome says what happened to the error bank.
func (s *SummaryScreen) renderOutcome() string {
	sum := s.summary
	switch {
	case sum.Mode == session.ModeReview && sum.Cleared:
		return theme.Correct.Render(fmt.Sprintf("All cleared! %s was removed from the error bank.", sum.Artifact))
	case sum.Mode == session.ModeReview:
		return theme.Warning.Render(fmt.Sprintf("%s keeps the questions you still missed.", sum.Artifact))
	case sum.Artifact != "":
		return theme.Warning.Render(fmt.Sprintf("Missed questions saved to %s for review.", sum.Artifact))
	case sum.TotalQuestions > 0 && len(sum.Missed) == 0:
		return theme.Correct.Render("Perfect score! Nothing to review.")
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
