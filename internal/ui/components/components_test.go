package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type chosenMsg int

func testMenu() Menu {
	item := func(label string, n int) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			return func() tea.Msg { return chosenMsg(n) }
		}}
	}
	return NewMenu([]MenuItem{
		item("Take a quiz", 1),
		{Label: "Disabled", Disabled: true},
		item("Quit", 3),
	})
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterActivates(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if got := cmd(); got != chosenMsg(1) {
		t.Errorf("msg = %v, want 1", got)
	}
}

func TestMenu_NumberShortcut(t *testing.T) {
	m := testMenu()
	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd() != chosenMsg(3) {
		t.Fatal("expected item 3 to be activated")
	}
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}

	if _, cmd := m.Update(tea.KeyPressMsg{Code: '2', Text: "2"}); cmd != nil {
		t.Error("disabled item must not activate")
	}
	if _, cmd := m.Update(tea.KeyPressMsg{Code: '7', Text: "7"}); cmd != nil {
		t.Error("out of range number must not activate")
	}
}

func TestMenu_ViewNumbersItems(t *testing.T) {
	view := testMenu().View()
	for _, want := range []string{"1) Take a quiz", "3) Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTextInput_RejectClearsOnEdit(t *testing.T) {
	in := NewTextInput("Answer", "", 0)
	in.Reject("not a number")
	if in.Error() == "" || !strings.Contains(in.View(), "not a number") {
		t.Fatal("expected error line to be shown")
	}
	in, _ = in.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if in.Error() != "" {
		t.Errorf("error should clear on edit, got %q", in.Error())
	}
	if in.Value() != "1" {
		t.Errorf("Value = %q, want %q", in.Value(), "1")
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar("Q", 2, 5, 40).View(), "2/5") {
		t.Error("view should include the counter")
	}
}
