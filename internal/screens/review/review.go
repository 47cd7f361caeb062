package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	sessionscreen "github.com/abhisek/quizbox/internal/screens/session"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

type artifactsLoadedMsg struct {
	Names  []string
	Counts map[string]int
	Err    error
}

type artifactChosenMsg struct {
	name string
}

// ReviewScreen lists saved error artifacts, newest first, and starts a
// review session over the chosen one.
type ReviewScreen struct {
	env    *screen.Env
	menu   components.Menu
	loaded bool
	empty  bool
	errMsg string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a new ReviewScreen.
func New(env *screen.Env) *ReviewScreen {
	return &ReviewScreen{env: env}
}

func (s *ReviewScreen) Init() tea.Cmd {
	bank := s.env.Bank
	return func() tea.Msg {
		names, err := bank.List()
		if err != nil {
			return artifactsLoadedMsg{Err: err}
		}
		counts := make(map[string]int, len(names))
		for _, n := range names {
			quiz, err := bank.Load(n)
			if err != nil {
				counts[n] = -1
				continue
			}
			counts[n] = len(quiz.Questions)
		}
		return artifactsLoadedMsg{Names: names, Counts: counts}
	}
}

func (s *ReviewScreen) Title() string {
	return "Review my errors"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case artifactsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.env.Log.Warn("list error bank", "err", msg.Err)
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.empty = len(msg.Names) == 0
		items := make([]components.MenuItem, 0, len(msg.Names))
		for _, name := range msg.Names {
			item := components.MenuItem{
				Label: name,
				Action: func() tea.Cmd {
					return func() tea.Msg { return artifactChosenMsg{name: name} }
				},
			}
			switch n := msg.Counts[name]; {
			case n < 0:
				item.Detail = "unreadable"
				item.Disabled = true
			default:
				item.Detail = fmt.Sprintf("%d questions", n)
			}
			items = append(items, item)
		}
		s.menu = components.NewMenu(items)
		return s, nil

	case artifactChosenMsg:
		return s.start(msg.name)
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ReviewScreen) start(name string) (screen.Screen, tea.Cmd) {
	quiz, err := s.env.Bank.Load(name)
	if err != nil {
		s.env.Log.Warn("load error artifact", "artifact", name, "err", err)
		s.errMsg = err.Error()
		return s, nil
	}
	logging.Warnings(s.env.Log, name, quiz.Warnings())
	if len(quiz.Questions) == 0 {
		s.errMsg = fmt.Sprintf("%s has no valid questions", name)
		return s, nil
	}
	state := session.NewReviewState(uuid.New().String(), name, quiz.Questions)
	s.env.Log.Info("review start", "session", state.SessionID, "artifact", name, "questions", len(quiz.Questions))
	return s, router.Cmd(router.ReplaceScreenMsg{Screen: sessionscreen.New(s.env, state)})
}

func (s *ReviewScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case !s.loaded:
		b.WriteString(theme.Hint.Render("Loading error bank..."))
	case s.empty:
		b.WriteString(theme.Hint.Render("No saved errors. Missed questions from your quizzes will show up here."))
	default:
		b.WriteString(theme.Title.Render("Saved error sets"))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Newest first. Questions you answer correctly are removed from the set."))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return layout.Block(b.String(), width)
}
