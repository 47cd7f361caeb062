package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/create"
	"github.com/abhisek/quizbox/internal/screens/history"
	"github.com/abhisek/quizbox/internal/screens/picker"
	"github.com/abhisek/quizbox/internal/screens/review"
	"github.com/abhisek/quizbox/internal/screens/themelist"
	"github.com/abhisek/quizbox/internal/themes"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env        *screen.Env
	menu       components.Menu
	themeCount int
	errorCount int
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return router.Cmd(router.PushScreenMsg{Screen: build()})
		}
	}

	items := []components.MenuItem{
		{Label: "Take a quiz", Action: push(func() screen.Screen { return picker.New(env) })},
		{Label: "Review my errors", Action: push(func() screen.Screen { return review.New(env) })},
		{Label: "Load a theme", Action: push(func() screen.Screen { return themelist.NewAdd(env) })},
		{Label: "Create a quiz", Action: push(func() screen.Screen { return create.New(env) })},
		{Label: "Manage themes", Action: push(func() screen.Screen { return themelist.New(env) })},
		{Label: "History", Action: push(func() screen.Screen { return history.New(env.History) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{env: env, menu: components.NewMenu(items)}
	h.refresh()
	return h
}

// refresh recounts themes and error artifacts.
func (h *HomeScreen) refresh() {
	h.errMsg = ""
	h.themeCount = 0
	for _, t := range h.env.Themes.Registry().All() {
		if t.Name != themes.ErrorsThemeName {
			h.themeCount++
		}
	}
	n, err := h.env.Bank.Len()
	if err != nil {
		h.env.Log.Warn("count error artifacts", "err", err)
		h.errMsg = err.Error()
	}
	h.errorCount = n
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("What would you like to do?"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d %s loaded   %d of %d error sets saved",
		h.themeCount, plural(h.themeCount, "theme", "themes"), h.errorCount, h.env.Bank.Capacity())))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())
	if h.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(h.errMsg))
	}
	return layout.Block(b.String(), width)
}

func (h *HomeScreen) Title() string {
	return "Main menu"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
