package question

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecode_PositionalMultipleChoice(t *testing.T) {
	data := []byte(`[
		["Capital of France?", ["Paris", true], ["Lyon", false], "Paris is the capital."]
	]`)

	quiz, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(quiz.Skipped) != 0 {
		t.Fatalf("unexpected skipped records: %v", quiz.Skipped)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(quiz.Questions))
	}

	q := quiz.Questions[0]
	if q.Kind != KindMultipleChoice {
		t.Fatalf("Kind = %q, want %q", q.Kind, KindMultipleChoice)
	}
	want := MultipleChoice{
		Prompt:      "Capital of France?",
		Options:     []Option{{"Paris", true}, {"Lyon", false}},
		Explanation: "Paris is the capital.",
	}
	if !reflect.DeepEqual(*q.MultipleChoice, want) {
		t.Errorf("MultipleChoice = %+v, want %+v", *q.MultipleChoice, want)
	}
}

func TestDecode_PositionalMatching(t *testing.T) {
	data := []byte(`[
		["Match the pairs", ["dog", "cat"], ["meow", "woof"], {"dog": 1, "cat": 0}, "Animals."]
	]`)

	quiz, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("got %d questions (skipped %v), want 1", len(quiz.Questions), quiz.Skipped)
	}
	q := quiz.Questions[0]
	if q.Kind != KindMatching {
		t.Fatalf("Kind = %q, want %q", q.Kind, KindMatching)
	}
	if q.Matching.Answer["dog"] != 1 || q.Matching.Answer["cat"] != 0 {
		t.Errorf("Answer = %v", q.Matching.Answer)
	}
	if q.Explanation() != "Animals." {
		t.Errorf("Explanation = %q", q.Explanation())
	}
}

func TestDecode_ObjectAndPositionalAgree(t *testing.T) {
	positional := []byte(`[["2+2?", ["4", true], ["5", false], "Basic sum."]]`)
	object := []byte(`[{"type": "multiple_choice", "prompt": "2+2?",
		"options": [{"text": "4", "correct": true}, {"text": "5", "correct": false}],
		"explanation": "Basic sum."}]`)

	a, err := Decode(positional)
	if err != nil {
		t.Fatalf("Decode positional: %v", err)
	}
	b, err := Decode(object)
	if err != nil {
		t.Fatalf("Decode object: %v", err)
	}
	if !reflect.DeepEqual(a.Questions, b.Questions) {
		t.Errorf("positional %+v != object %+v", a.Questions, b.Questions)
	}
}

func TestDecode_SkipsMalformedRecords(t *testing.T) {
	data := []byte(`[
		["ok?", ["yes", true], "fine"],
		["no correct option", ["a", false], ["b", false], "x"],
		42,
		{"type": "multiple_choice", "prompt": "extra field", "options": [{"text": "a", "correct": true}], "bogus": 1},
		{"type": "matching", "prompt": "not a bijection", "categories": ["a", "b"], "options": ["x", "y"], "answer": {"a": 0, "b": 0}},
		["last", ["z", true], "z"]
	]`)

	quiz, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("got %d valid questions, want 2", len(quiz.Questions))
	}
	if quiz.Questions[0].Prompt() != "ok?" || quiz.Questions[1].Prompt() != "last" {
		t.Errorf("valid records out of order: %q, %q", quiz.Questions[0].Prompt(), quiz.Questions[1].Prompt())
	}

	wantIdx := []int{1, 2, 3, 4}
	if len(quiz.Skipped) != len(wantIdx) {
		t.Fatalf("got %d skipped, want %d: %v", len(quiz.Skipped), len(wantIdx), quiz.Skipped)
	}
	for i, rerr := range quiz.Skipped {
		if rerr.Index != wantIdx[i] {
			t.Errorf("Skipped[%d].Index = %d, want %d", i, rerr.Index, wantIdx[i])
		}
		if !errors.Is(rerr, ErrMalformedRecord) {
			t.Errorf("Skipped[%d] = %v, want ErrMalformedRecord", i, rerr)
		}
	}
}

func TestDecode_NotAnArray(t *testing.T) {
	if _, err := Decode([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("expected error for non-array document")
	}
	if _, err := Decode([]byte(`[`)); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestEncode_WritesObjectForm(t *testing.T) {
	qs := []Question{
		NewMultipleChoice(MultipleChoice{
			Prompt:  "Pick primes",
			Options: []Option{{"2", true}, {"4", false}, {"5", true}},
		}),
		NewMatching(Matching{
			Prompt:     "Match",
			Categories: []string{"a", "b"},
			Options:    []string{"x", "y"},
			Answer:     map[string]int{"a": 1, "b": 0},
		}),
	}

	data, err := Encode(qs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("output is not an array of objects: %v", err)
	}
	if generic[0]["type"] != string(KindMultipleChoice) || generic[1]["type"] != string(KindMatching) {
		t.Errorf("unexpected type tags: %v, %v", generic[0]["type"], generic[1]["type"])
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(back.Questions, qs) {
		t.Errorf("decoded %+v, want %+v", back.Questions, qs)
	}
}

func TestEncode_RejectsInvalid(t *testing.T) {
	bad := NewMultipleChoice(MultipleChoice{Prompt: "?", Options: []Option{{"a", false}}})
	if _, err := Encode([]Question{bad}); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("Encode error = %v, want ErrMalformedRecord", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	qs := []Question{NewMultipleChoice(MultipleChoice{
		Prompt:      "Sky colour?",
		Options:     []Option{{"blue", true}, {"green", false}},
		Explanation: "Rayleigh scattering.",
	})}

	if err := SaveFile(path, qs); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	quiz, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(quiz.Questions, qs) {
		t.Errorf("loaded %+v, want %+v", quiz.Questions, qs)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) = %v, want ErrNotExist", err)
	}
}

func TestDecode_OptionCorrectDefaultsToFalse(t *testing.T) {
	data := []byte(`[
		{"type":"multiple_choice","prompt":"Pick b","options":[{"text":"a"},{"text":"b","correct":true}]}
	]`)

	quiz, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(quiz.Skipped) != 0 {
		t.Fatalf("unexpected skipped records: %v", quiz.Skipped)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(quiz.Questions))
	}
	want := []Option{{"a", false}, {"b", true}}
	if got := quiz.Questions[0].MultipleChoice.Options; !reflect.DeepEqual(got, want) {
		t.Errorf("Options = %+v, want %+v", got, want)
	}
}
