package create

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/screen/screentest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// press sends a key and feeds any resulting message back, as the
// program loop would for menu actions.
func press(s *CreateScreen, k tea.KeyPressMsg) {
	_, cmd := s.Update(k)
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		switch msg.(type) {
		case themeChosenMsg, kindChosenMsg:
			s.Update(msg)
		}
	}
}

func enter(s *CreateScreen, value string) {
	s.input.Model.SetValue(value)
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
}

func TestCreate_WritesQuizFile(t *testing.T) {
	env := screentest.Env(t)
	dir := screentest.Theme(t, env, "Go", nil)
	s := New(env)

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter}) // theme
	if s.step != stepName {
		t.Fatalf("step = %v, want stepName", s.step)
	}
	enter(s, "basics")

	press(s, keyPress('1')) // multiple choice
	enter(s, "Which are reference types?")
	enter(s, "map | int | slice")
	enter(s, "4")
	if s.input.Error() == "" {
		t.Fatal("out-of-range answer should be rejected")
	}
	enter(s, "3,1")
	enter(s, "Maps and slices share backing storage.")
	if s.step != stepMore {
		t.Fatalf("step = %v, want stepMore", s.step)
	}

	press(s, keyPress('y'))
	press(s, keyPress('2')) // matching
	enter(s, "Match the zero values")
	enter(s, "int | string")
	enter(s, `"" | 0 | nil`)
	if s.input.Error() == "" {
		t.Fatal("option count must match category count")
	}
	enter(s, `"" | 0`)
	enter(s, "2 1")
	enter(s, "")
	press(s, keyPress('n'))

	if s.step != stepDone || s.errMsg != "" {
		t.Fatalf("step = %v err = %q", s.step, s.errMsg)
	}
	quiz, err := question.LoadFile(filepath.Join(dir, "basics.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(quiz.Questions) != 2 || len(quiz.Skipped) != 0 {
		t.Fatalf("questions = %d skipped = %d", len(quiz.Questions), len(quiz.Skipped))
	}
	mc := quiz.Questions[0].MultipleChoice
	if got := mc.CorrectIndices(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("correct indices = %v, want [0 2]", got)
	}
	m := quiz.Questions[1].Matching
	if m.Answer["int"] != 1 || m.Answer["string"] != 0 {
		t.Errorf("answer = %v", m.Answer)
	}
	if !strings.Contains(s.View(80, 24), "Saved 2 questions") {
		t.Error("expected saved message")
	}
}

func TestCreate_ExistingNameRejected(t *testing.T) {
	env := screentest.Env(t)
	dir := screentest.Theme(t, env, "Go", nil)
	if err := os.WriteFile(filepath.Join(dir, "basics.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(env)
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	enter(s, "basics.json")

	if s.step != stepName || !strings.Contains(s.input.Error(), "already exists") {
		t.Errorf("step = %v err = %q", s.step, s.input.Error())
	}
}

func TestCreate_NoThemes(t *testing.T) {
	s := New(screentest.Env(t))
	if !strings.Contains(s.View(80, 24), "No themes yet") {
		t.Error("expected empty message")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a | | b |c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("splitList = %q", got)
	}
}
