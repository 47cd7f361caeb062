package themelist

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/quizstore"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/themes"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeAddName
	modeAddPath
	modeRename
	modeConfirmDelete
)

// ThemeListScreen lists registered themes and edits the registry. Every
// change is written back to the registry file immediately.
type ThemeListScreen struct {
	env  *screen.Env
	mode mode

	// addOnly pops the screen after a successful add.
	addOnly bool

	menu    components.Menu
	input   components.TextInput
	newName string

	detail string
	notice string
	errMsg string
}

var _ screen.Screen = (*ThemeListScreen)(nil)
var _ screen.KeyHintProvider = (*ThemeListScreen)(nil)
var _ screen.EscapeHandler = (*ThemeListScreen)(nil)

// New creates the theme manager.
func New(env *screen.Env) *ThemeListScreen {
	s := &ThemeListScreen{env: env}
	s.reload()
	return s
}

// NewAdd opens straight into the "load a theme" form.
func NewAdd(env *screen.Env) *ThemeListScreen {
	s := New(env)
	s.addOnly = true
	s.beginAdd()
	return s
}

func (s *ThemeListScreen) Init() tea.Cmd {
	if s.mode != modeList {
		return s.input.Init()
	}
	return nil
}

func (s *ThemeListScreen) Title() string {
	if s.addOnly {
		return "Load a theme"
	}
	return "Manage themes"
}

// HandlesEscape keeps Esc inside forms so it cancels the form instead
// of leaving the screen.
func (s *ThemeListScreen) HandlesEscape() bool {
	return s.mode != modeList && !s.addOnly
}

func (s *ThemeListScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeList:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Quizzes"},
			{Key: "A", Description: "Add"},
			{Key: "R", Description: "Rename"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// reload rebuilds the menu from the registry, keeping the selection.
func (s *ThemeListScreen) reload() {
	selected := s.menu.Selected
	var items []components.MenuItem
	for _, t := range s.env.Themes.Registry().All() {
		items = append(items, components.MenuItem{Label: t.Name, Detail: t.Path})
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *ThemeListScreen) selectedTheme() (themes.Theme, bool) {
	all := s.env.Themes.Registry().All()
	if s.menu.Selected < 0 || s.menu.Selected >= len(all) {
		return themes.Theme{}, false
	}
	return all[s.menu.Selected], true
}

func (s *ThemeListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.mode {
	case modeList:
		if isKey {
			return s.handleListKey(kmsg)
		}
		return s, nil

	case modeConfirmDelete:
		if isKey {
			switch strings.ToLower(kmsg.String()) {
			case "y":
				s.deleteSelected()
			case "n", "esc":
				s.mode = modeList
			}
		}
		return s, nil
	}

	if isKey {
		switch kmsg.String() {
		case "esc":
			s.mode = modeList
			return s, nil
		case "enter":
			return s.submitForm()
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ThemeListScreen) handleListKey(k tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.notice, s.errMsg = "", ""
	switch strings.ToLower(k.String()) {
	case "a":
		s.beginAdd()
		return s, s.input.Init()
	case "r":
		t, ok := s.selectedTheme()
		if !ok {
			return s, nil
		}
		if t.Name == themes.ErrorsThemeName {
			s.errMsg = "The error bank theme cannot be renamed"
			return s, nil
		}
		s.mode = modeRename
		s.input = components.NewTextInput(fmt.Sprintf("New name for %q", t.Name), t.Name, 0)
		return s, s.input.Init()
	case "d":
		t, ok := s.selectedTheme()
		if !ok {
			return s, nil
		}
		if t.Name == themes.ErrorsThemeName {
			s.errMsg = "The error bank theme cannot be deleted"
			return s, nil
		}
		s.mode = modeConfirmDelete
		return s, nil
	case "enter":
		s.showQuizzes()
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(k)
	s.detail = ""
	return s, cmd
}

func (s *ThemeListScreen) beginAdd() {
	s.mode = modeAddName
	s.newName = ""
	s.input = components.NewTextInput("Theme name", "e.g. Go basics", 0)
}

func (s *ThemeListScreen) submitForm() (screen.Screen, tea.Cmd) {
	value := strings.TrimSpace(s.input.Value())

	switch s.mode {
	case modeAddName:
		if value == "" {
			s.input.Reject("Enter a name")
			return s, nil
		}
		if _, exists := s.env.Themes.Registry().Get(value); exists {
			s.input.Reject(fmt.Sprintf("%q already exists; its folder will be replaced", value))
		}
		s.newName = value
		s.mode = modeAddPath
		warn := s.input.Error()
		s.input = components.NewTextInput(fmt.Sprintf("Folder with quiz files for %q", value), "/path/to/folder", 0)
		if warn != "" {
			s.input.Reject(warn)
		}
		return s, s.input.Init()

	case modeAddPath:
		path, err := themes.ResolveFolder(value)
		if err != nil {
			s.input.Reject(err.Error())
			return s, nil
		}
		if err := s.env.Themes.Add(s.newName, path); err != nil {
			return s.failForm(err)
		}
		s.env.Log.Info("theme added", "theme", s.newName, "path", path)
		if s.addOnly {
			return s, router.Cmd(router.PopScreenMsg{})
		}
		s.notice = fmt.Sprintf("Added %q", s.newName)

	case modeRename:
		t, ok := s.selectedTheme()
		if !ok {
			s.mode = modeList
			return s, nil
		}
		if err := s.env.Themes.Rename(t.Name, value); err != nil {
			return s.failForm(err)
		}
		s.env.Log.Info("theme renamed", "from", t.Name, "to", value)
		s.notice = fmt.Sprintf("Renamed %q to %q", t.Name, value)
	}

	s.mode = modeList
	s.reload()
	return s, nil
}

// failForm keeps invalid names in the form and aborts on file errors.
func (s *ThemeListScreen) failForm(err error) (screen.Screen, tea.Cmd) {
	if errors.Is(err, themes.ErrInvalidName) || errors.Is(err, themes.ErrInvalidPath) || errors.Is(err, themes.ErrThemeExists) {
		s.input.Reject(err.Error())
		return s, nil
	}
	s.env.Log.Warn("save registry", "err", err)
	s.errMsg = err.Error()
	s.mode = modeList
	s.reload()
	return s, nil
}

func (s *ThemeListScreen) deleteSelected() {
	s.mode = modeList
	t, ok := s.selectedTheme()
	if !ok {
		return
	}
	if err := s.env.Themes.Delete(t.Name); err != nil {
		s.env.Log.Warn("delete theme", "theme", t.Name, "err", err)
		s.errMsg = err.Error()
	} else {
		s.env.Log.Info("theme deleted", "theme", t.Name)
		s.notice = fmt.Sprintf("Deleted %q. Its folder was left untouched.", t.Name)
	}
	s.reload()
}

func (s *ThemeListScreen) showQuizzes() {
	t, ok := s.selectedTheme()
	if !ok {
		return
	}
	files, err := quizstore.List(t.Path)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	if len(files) == 0 {
		s.detail = "No quiz files"
		return
	}
	var b strings.Builder
	for _, f := range files {
		if f.Err != nil {
			fmt.Fprintf(&b, "  %s  (unreadable)\n", f.Name)
			continue
		}
		fmt.Fprintf(&b, "  %s  %d questions\n", f.Name, f.Count)
	}
	s.detail = strings.TrimRight(b.String(), "\n")
}

func (s *ThemeListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch s.mode {
	case modeList:
		if len(s.menu.Items) == 0 {
			b.WriteString(theme.Hint.Render("No themes yet. Press A to add one."))
		} else {
			b.WriteString(theme.Title.Render("Themes"))
			b.WriteString("\n\n")
			b.WriteString(s.menu.View())
		}
		if s.detail != "" {
			b.WriteString("\n" + theme.Hint.Render(s.detail))
		}
	case modeConfirmDelete:
		t, _ := s.selectedTheme()
		b.WriteString(theme.Prompt.Render(fmt.Sprintf("Delete theme %q? The folder is not removed. (y/n)", t.Name)))
	default:
		b.WriteString(s.input.View())
	}

	if s.notice != "" {
		b.WriteString("\n\n" + theme.Correct.Render(s.notice))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return layout.Block(b.String(), width)
}
