package question

import (
	"errors"
	"testing"
)

func TestMultipleChoiceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mc      MultipleChoice
		wantErr bool
	}{
		{"single correct", MultipleChoice{Prompt: "q", Options: []Option{{"a", true}, {"b", false}}}, false},
		{"two correct", MultipleChoice{Prompt: "q", Options: []Option{{"a", true}, {"b", true}}}, false},
		{"no correct", MultipleChoice{Prompt: "q", Options: []Option{{"a", false}}}, true},
		{"no options", MultipleChoice{Prompt: "q"}, true},
		{"blank prompt", MultipleChoice{Prompt: "  ", Options: []Option{{"a", true}}}, true},
		{"blank option", MultipleChoice{Prompt: "q", Options: []Option{{"", true}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMultipleChoice(tt.mc).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("error %v does not wrap ErrMalformedRecord", err)
			}
		})
	}
}

func TestMatchingValidate(t *testing.T) {
	base := func() Matching {
		return Matching{
			Prompt:     "match",
			Categories: []string{"a", "b", "c"},
			Options:    []string{"x", "y", "z"},
			Answer:     map[string]int{"a": 2, "b": 0, "c": 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(m *Matching)
		wantErr bool
	}{
		{"bijection", func(m *Matching) {}, false},
		{"missing category", func(m *Matching) { delete(m.Answer, "c") }, true},
		{"unknown category", func(m *Matching) { delete(m.Answer, "c"); m.Answer["d"] = 1 }, true},
		{"repeated option", func(m *Matching) { m.Answer["c"] = 2 }, true},
		{"index out of range", func(m *Matching) { m.Answer["c"] = 3 }, true},
		{"negative index", func(m *Matching) { m.Answer["c"] = -1 }, true},
		{"size mismatch", func(m *Matching) { m.Options = append(m.Options, "w") }, true},
		{"duplicate category", func(m *Matching) { m.Categories[1] = "a" }, true},
		{"no categories", func(m *Matching) { m.Categories = nil; m.Options = nil; m.Answer = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			tt.mutate(&m)
			err := NewMatching(m).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	if err := (Question{Kind: "essay"}).Validate(); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("Validate() = %v, want ErrMalformedRecord", err)
	}
	if err := (Question{Kind: KindMatching}).Validate(); err == nil {
		t.Error("expected error for matching kind without body")
	}
}

func TestCorrectIndices(t *testing.T) {
	mc := &MultipleChoice{Options: []Option{{"a", false}, {"b", true}, {"c", true}}}
	got := mc.CorrectIndices()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("CorrectIndices() = %v, want [1 2]", got)
	}
}
