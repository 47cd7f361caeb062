package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an inline error
// line used to re-prompt after invalid input.
type TextInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewTextInput creates a new focused text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Any edit clears the error line.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.err = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input, and the error line if any.
func (t TextInput) View() string {
	view := ""
	if t.Label != "" {
		view = theme.Prompt.Render(t.Label) + "\n"
	}
	view += t.Model.View()
	if t.err != "" {
		view += "\n" + theme.ErrorText.Render(t.err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reject keeps the typed value and shows msg until the next edit.
func (t *TextInput) Reject(msg string) {
	t.err = msg
}

// Reset clears the value and any error, and sets a new label.
func (t *TextInput) Reset(label string) {
	t.Model.Reset()
	t.Label = label
	t.err = ""
}

// Error returns the current error line.
func (t TextInput) Error() string {
	return t.err
}
