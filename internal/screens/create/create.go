package create

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/evaluate"
	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/quizstore"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/themes"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

type step int

const (
	stepTheme step = iota
	stepName
	stepKind
	stepPrompt
	stepOptions
	stepCategories
	stepAnswer
	stepExplanation
	stepMore
	stepDone
)

// listSeparator splits options and categories typed on one line.
const listSeparator = "|"

type themeChosenMsg struct {
	theme themes.Theme
}

type kindChosenMsg struct {
	kind question.Kind
}

// CreateScreen is a wizard that writes a new quiz file into a theme.
type CreateScreen struct {
	env  *screen.Env
	step step

	themeMenu components.Menu
	kindMenu  components.Menu
	input     components.TextInput

	theme themes.Theme
	name  string

	// draft is the question being entered.
	draft     question.Question
	questions []question.Question

	savedPath string
	errMsg    string
}

var _ screen.Screen = (*CreateScreen)(nil)
var _ screen.KeyHintProvider = (*CreateScreen)(nil)

// New creates a CreateScreen.
func New(env *screen.Env) *CreateScreen {
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
	kind := func(k question.Kind) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return kindChosenMsg{kind: k} }
		}
	}
	return &CreateScreen{
		env:       env,
		themeMenu: components.NewMenu(items),
		kindMenu: components.NewMenu([]components.MenuItem{
			{Label: "Multiple choice", Detail: "one or more correct options", Action: kind(question.KindMultipleChoice)},
			{Label: "Matching", Detail: "map each category to an option", Action: kind(question.KindMatching)},
		}),
	}
}

func (s *CreateScreen) Init() tea.Cmd {
	return nil
}

func (s *CreateScreen) Title() string {
	return "Create a quiz"
}

func (s *CreateScreen) Status() string {
	if s.name == "" {
		return s.theme.Name
	}
	return fmt.Sprintf("%s / %s.json", s.theme.Name, s.name)
}

func (s *CreateScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepTheme, stepKind:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Cancel"},
		}
	case stepMore:
		return []layout.KeyHint{
			{Key: "Y", Description: "Another question"},
			{Key: "N", Description: "Save quiz"},
		}
	case stepDone:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case themeChosenMsg:
		s.theme = msg.theme
		return s, s.ask(stepName, "Quiz file name", "e.g. channels")
	case kindChosenMsg:
		return s, s.beginQuestion(msg.kind)
	}

	switch s.step {
	case stepTheme:
		var cmd tea.Cmd
		s.themeMenu, cmd = s.themeMenu.Update(msg)
		return s, cmd
	case stepKind:
		var cmd tea.Cmd
		s.kindMenu, cmd = s.kindMenu.Update(msg)
		return s, cmd
	case stepMore:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch strings.ToLower(k.String()) {
			case "y":
				s.step = stepKind
			case "n":
				s.save()
			}
		}
		return s, nil
	case stepDone:
		return s, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return s, s.submit(strings.TrimSpace(s.input.Value()))
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// ask moves to st with a fresh input.
func (s *CreateScreen) ask(st step, label, placeholder string) tea.Cmd {
	s.step = st
	s.input = components.NewTextInput(label, placeholder, 0)
	return s.input.Init()
}

func (s *CreateScreen) beginQuestion(kind question.Kind) tea.Cmd {
	if kind == question.KindMatching {
		s.draft = question.NewMatching(question.Matching{})
	} else {
		s.draft = question.NewMultipleChoice(question.MultipleChoice{})
	}
	return s.ask(stepPrompt, fmt.Sprintf("Question %d prompt", len(s.questions)+1), "")
}

func (s *CreateScreen) submit(value string) tea.Cmd {
	switch s.step {
	case stepName:
		return s.submitName(value)

	case stepPrompt:
		if value == "" {
			s.input.Reject("Enter the question text")
			return nil
		}
		if s.draft.Kind == question.KindMatching {
			s.draft.Matching.Prompt = value
			return s.ask(stepCategories, "Categories, separated by "+listSeparator, "noun | verb | adjective")
		}
		s.draft.MultipleChoice.Prompt = value
		return s.ask(stepOptions, "Options, separated by "+listSeparator, "first | second | third")

	case stepCategories:
		cats := splitList(value)
		if len(cats) == 0 {
			s.input.Reject("Enter at least one category")
			return nil
		}
		s.draft.Matching.Categories = cats
		return s.ask(stepOptions, fmt.Sprintf("%d options, separated by %s", len(cats), listSeparator), "")

	case stepOptions:
		return s.submitOptions(value)

	case stepAnswer:
		return s.submitAnswer(value)

	case stepExplanation:
		if s.draft.Kind == question.KindMatching {
			s.draft.Matching.Explanation = value
		} else {
			s.draft.MultipleChoice.Explanation = value
		}
		s.questions = append(s.questions, s.draft)
		s.draft = question.Question{}
		s.step = stepMore
	}
	return nil
}

func (s *CreateScreen) submitName(value string) tea.Cmd {
	name := strings.TrimSuffix(value, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) {
		s.input.Reject("Enter a plain file name")
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.theme.Path, name+".json")); err == nil {
		s.input.Reject(fmt.Sprintf("%s.json already exists in this theme", name))
		return nil
	}
	s.name = name
	s.step = stepKind
	return nil
}

func (s *CreateScreen) submitOptions(value string) tea.Cmd {
	opts := splitList(value)
	if len(opts) == 0 {
		s.input.Reject("Enter at least one option")
		return nil
	}
	if s.draft.Kind == question.KindMatching {
		m := s.draft.Matching
		if len(opts) != len(m.Categories) {
			s.input.Reject(fmt.Sprintf("Enter exactly %d options, one per category", len(m.Categories)))
			return nil
		}
		m.Options = opts
		return s.ask(stepAnswer, "Correct option number for each category, in order", "e.g. 2 1 3")
	}
	mc := s.draft.MultipleChoice
	mc.Options = make([]question.Option, len(opts))
	for i, o := range opts {
		mc.Options[i] = question.Option{Text: o}
	}
	return s.ask(stepAnswer, "Numbers of the correct options", "e.g. 1,3")
}

// submitAnswer reads the key with the same parser used when answering,
// then validates the finished record.
func (s *CreateScreen) submitAnswer(value string) tea.Cmd {
	a, err := evaluate.ParseAnswer(s.draft, value)
	if err != nil {
		s.input.Reject(strings.TrimPrefix(err.Error(), evaluate.ErrInvalidInput.Error()+": "))
		return nil
	}
	if s.draft.Kind == question.KindMatching {
		s.draft.Matching.Answer = a.Mapping
	} else {
		for i := range s.draft.MultipleChoice.Options {
			s.draft.MultipleChoice.Options[i].Correct = false
		}
		for _, i := range a.Choices {
			s.draft.MultipleChoice.Options[i].Correct = true
		}
	}
	if err := s.draft.Validate(); err != nil {
		s.input.Reject(err.Error())
		return nil
	}
	return s.ask(stepExplanation, "Explanation shown after answering (optional)", "")
}

func (s *CreateScreen) save() {
	path, err := quizstore.Create(s.theme.Path, s.name, s.questions)
	if err != nil {
		s.env.Log.Warn("create quiz", "theme", s.theme.Name, "name", s.name, "err", err)
		if errors.Is(err, quizstore.ErrQuizExists) {
			s.errMsg = fmt.Sprintf("%s.json was created meanwhile; nothing was overwritten", s.name)
		} else {
			s.errMsg = err.Error()
		}
		s.step = stepDone
		return
	}
	s.env.Log.Info("quiz created", "path", path, "questions", len(s.questions))
	s.savedPath = path
	s.step = stepDone
}

// splitList splits on the separator and drops empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, listSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *CreateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.step {
	case stepTheme:
		if len(s.themeMenu.Items) == 0 {
			b.WriteString(theme.Hint.Render("No themes yet. Use \"Load a theme\" first."))
			break
		}
		b.WriteString(theme.Title.Render("Which theme gets the new quiz?"))
		b.WriteString("\n\n")
		b.WriteString(s.themeMenu.View())

	case stepKind:
		b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d type", len(s.questions)+1)))
		b.WriteString("\n\n")
		b.WriteString(s.kindMenu.View())

	case stepMore:
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d %s ready.", len(s.questions), plural(len(s.questions)))))
		b.WriteString("\n\n")
		b.WriteString(theme.Prompt.Render("Add another question? (y/n)"))

	case stepDone:
		if s.savedPath != "" {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("Saved %d %s to %s", len(s.questions), plural(len(s.questions)), s.savedPath)))
		}

	default:
		if s.draft.Prompt() != "" {
			b.WriteString(theme.Hint.Render(s.draft.Prompt()))
			b.WriteString("\n\n")
		}
		if s.step == stepAnswer && s.draft.Kind == question.KindMatching {
			m := s.draft.Matching
			b.WriteString(theme.Hint.Render("Categories: " + strings.Join(m.Categories, ", ")))
			b.WriteString("\n")
			for i, o := range m.Options {
				b.WriteString(theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, o)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		if s.step == stepAnswer && s.draft.Kind == question.KindMultipleChoice {
			for i, o := range s.draft.MultipleChoice.Options {
				b.WriteString(theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, o.Text)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString(s.input.View())
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return layout.Block(b.String(), width)
}

func plural(n int) string {
	if n == 1 {
		return "question"
	}
	return "questions"
}
