package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/quizstore"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	sessionscreen "github.com/abhisek/quizbox/internal/screens/session"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/themes"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

type step int

const (
	stepTheme step = iota
	stepQuizzes
	stepShuffle
)

// themeChosenMsg is sent by the theme menu.
type themeChosenMsg struct {
	theme themes.Theme
}

// PickerScreen walks through theme, quiz files, and shuffle choice,
// then replaces itself with a play session.
type PickerScreen struct {
	env  *screen.Env
	step step

	themeMenu components.Menu
	theme     themes.Theme

	files    []quizstore.File
	input    components.TextInput
	selected []quizstore.File

	questions []question.Question
	warnings  int
	errMsg    string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a PickerScreen listing every theme except the error bank.
func New(env *screen.Env) *PickerScreen {
	var items []components.MenuItem
	for _, t := range env.Themes.Registry().All() {
		if t.Name == themes.ErrorsThemeName {
			continue
		}
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Detail: t.Path,
			Action: func() tea.Cmd {
				return func() tea.Msg { return themeChosenMsg{theme: t} }
			},
		})
	}
	return &PickerScreen{env: env, themeMenu: components.NewMenu(items)}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Take a quiz"
}

func (p *PickerScreen) Status() string {
	return p.theme.Name
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	switch p.step {
	case stepQuizzes:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case stepShuffle:
		return []layout.KeyHint{
			{Key: "Y", Description: "Shuffle"},
			{Key: "N", Description: "Keep order"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose theme"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(themeChosenMsg); ok {
		return p.openTheme(m.theme)
	}

	switch p.step {
	case stepTheme:
		var cmd tea.Cmd
		p.themeMenu, cmd = p.themeMenu.Update(msg)
		return p, cmd

	case stepQuizzes:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
			return p.submitSelection()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd

	case stepShuffle:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch strings.ToLower(k.String()) {
			case "y":
				return p, p.start(true)
			case "n":
				return p, p.start(false)
			}
		}
	}
	return p, nil
}

// openTheme lists the quiz files of t. A missing or unreadable folder
// is reported and the theme menu stays active.
func (p *PickerScreen) openTheme(t themes.Theme) (screen.Screen, tea.Cmd) {
	files, err := quizstore.List(t.Path)
	if err != nil {
		p.env.Log.Warn("list quizzes", "theme", t.Name, "err", err)
		p.errMsg = err.Error()
		return p, nil
	}
	if len(files) == 0 {
		p.errMsg = fmt.Sprintf("No quiz files in %s", t.Path)
		return p, nil
	}
	p.theme = t
	p.files = files
	p.errMsg = ""
	p.step = stepQuizzes
	p.input = components.NewTextInput("Quizzes to play", "e.g. 1,3 or all", 0)
	return p, p.input.Init()
}

func (p *PickerScreen) submitSelection() (screen.Screen, tea.Cmd) {
	value := strings.TrimSpace(p.input.Value())
	var picked []quizstore.File
	if strings.EqualFold(value, "all") {
		picked = p.files
	} else {
		idx, err := quizstore.ParseSelection(value, len(p.files))
		if err != nil {
			p.input.Reject(err.Error())
			return p, nil
		}
		for _, i := range idx {
			picked = append(picked, p.files[i])
		}
	}

	qs, warnings := quizstore.Collect(picked)
	logging.Warnings(p.env.Log, p.theme.Name, warnings)
	if len(qs) == 0 {
		p.input.Reject("The selected quizzes have no valid questions")
		return p, nil
	}
	p.selected = picked
	p.questions = qs
	p.warnings = len(warnings)

	switch p.env.Config.Shuffle {
	case config.ShuffleAlways:
		return p, p.start(true)
	case config.ShuffleNever:
		return p, p.start(false)
	}
	p.step = stepShuffle
	return p, nil
}

func (p *PickerScreen) start(shuffle bool) tea.Cmd {
	qs := p.questions
	if shuffle {
		qs = quizstore.Shuffle(qs, p.env.Rand)
	}
	sources := make([]string, len(p.selected))
	for i, f := range p.selected {
		sources[i] = f.Name
	}
	state := session.NewSessionState(uuid.New().String(), session.ModePlay, p.theme.Name, sources, qs)
	p.env.Log.Info("session start", "session", state.SessionID, "theme", p.theme.Name,
		"quizzes", sources, "questions", len(qs), "shuffled", shuffle)
	return router.Cmd(router.ReplaceScreenMsg{Screen: sessionscreen.New(p.env, state)})
}

func (p *PickerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch p.step {
	case stepTheme:
		if len(p.themeMenu.Items) == 0 {
			b.WriteString(theme.Hint.Render("No themes yet. Use \"Load a theme\" from the main menu."))
			break
		}
		b.WriteString(theme.Title.Render("Choose a theme"))
		b.WriteString("\n\n")
		b.WriteString(p.themeMenu.View())

	case stepQuizzes:
		b.WriteString(theme.Title.Render(p.theme.Name))
		b.WriteString("\n\n")
		for i, f := range p.files {
			line := fmt.Sprintf("  %d) %s", i+1, f.Name)
			if f.Err != nil {
				b.WriteString(theme.Warning.Render(line + "  (unreadable)"))
			} else {
				b.WriteString(theme.Body.Render(line) + theme.Hint.Render(fmt.Sprintf("  %d questions", f.Count)))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.input.View())

	case stepShuffle:
		b.WriteString(theme.Title.Render(p.theme.Name))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions from %d %s.",
			len(p.questions), len(p.selected), plural(len(p.selected), "quiz", "quizzes"))))
		if p.warnings > 0 {
			b.WriteString("\n" + theme.Warning.Render(fmt.Sprintf("%d malformed records skipped (see log).", p.warnings)))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Prompt.Render("Shuffle the questions? (y/n)"))
	}

	if p.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(p.errMsg))
	}
	return layout.Block(b.String(), width)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
