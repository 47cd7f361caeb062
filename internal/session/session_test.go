package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/quizbox/internal/errorbank"
	"github.com/abhisek/quizbox/internal/evaluate"
	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/store"
)

func mcQuestion(prompt string, correct ...int) question.Question {
	opts := []question.Option{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	for _, i := range correct {
		opts[i].Correct = true
	}
	return question.NewMultipleChoice(question.MultipleChoice{Prompt: prompt, Options: opts})
}

func matchingQuestion(prompt string) question.Question {
	return question.NewMatching(question.Matching{
		Prompt:     prompt,
		Categories: []string{"x", "y"},
		Options:    []string{"one", "two"},
		Answer:     map[string]int{"x": 1, "y": 0},
	})
}

func testState(qs ...question.Question) *SessionState {
	state := NewSessionState("test-session-id", ModePlay, "Go", []string{"basics.json"}, qs)
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	state.StartTime = clock
	state.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return state
}

type fakeBank struct {
	saved   [][]question.Question
	updated map[string][]question.Question
	err     error
}

func (b *fakeBank) Save(missed []question.Question) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.saved = append(b.saved, missed)
	if len(missed) == 0 {
		return "", nil
	}
	return "MyError000001.json", nil
}

func (b *fakeBank) Update(name string, remaining []question.Question) error {
	if b.err != nil {
		return b.err
	}
	if b.updated == nil {
		b.updated = make(map[string][]question.Question)
	}
	b.updated[name] = remaining
	return nil
}

func TestNewSessionState_EmptyStartsInSummary(t *testing.T) {
	state := testState()
	if state.Phase != PhaseSummary {
		t.Errorf("Phase = %v, want PhaseSummary", state.Phase)
	}
	if CurrentQuestion(state) != nil {
		t.Error("CurrentQuestion should be nil for an empty session")
	}
}

func TestHandleAnswer_CorrectAndIncorrect(t *testing.T) {
	state := testState(mcQuestion("q1", 0, 2), matchingQuestion("q2"))

	correct, err := HandleAnswer(state, "3,1")
	if err != nil {
		t.Fatalf("HandleAnswer: %v", err)
	}
	if !correct || !state.LastAnswerCorrect {
		t.Error("expected q1 to be correct")
	}
	if state.Phase != PhaseFeedback {
		t.Errorf("Phase = %v, want PhaseFeedback", state.Phase)
	}
	if !Advance(state) {
		t.Fatal("Advance should move to q2")
	}

	correct, err = HandleAnswer(state, "1 2")
	if err != nil {
		t.Fatalf("HandleAnswer: %v", err)
	}
	if correct {
		t.Error("expected q2 to be incorrect")
	}
	if Advance(state) {
		t.Error("Advance after the last question should return false")
	}
	if state.Phase != PhaseSummary {
		t.Errorf("Phase = %v, want PhaseSummary", state.Phase)
	}

	if state.Tally.Attempted != 2 || state.Tally.Correct != 1 {
		t.Errorf("tally = %d/%d, want 1/2", state.Tally.Correct, state.Tally.Attempted)
	}
	if len(state.Tally.Missed) != 1 || state.Tally.Missed[0].Prompt() != "q2" {
		t.Errorf("missed = %v, want [q2]", state.Tally.Missed)
	}
	if len(state.Answers) != 2 || state.Answers[1].Kind != string(question.KindMatching) {
		t.Errorf("answers = %+v", state.Answers)
	}
}

func TestHandleAnswer_InvalidInputLeavesStateUntouched(t *testing.T) {
	state := testState(mcQuestion("q1", 0))

	for _, input := range []string{"", "abc", "4", "0"} {
		_, err := HandleAnswer(state, input)
		if !errors.Is(err, evaluate.ErrInvalidInput) {
			t.Errorf("HandleAnswer(%q) error = %v, want ErrInvalidInput", input, err)
		}
	}
	if state.Tally.Attempted != 0 || len(state.Answers) != 0 {
		t.Error("invalid input must not be recorded")
	}
	if state.Phase != PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", state.Phase)
	}
}

func TestHandleAnswer_OutsideActivePhase(t *testing.T) {
	state := testState(mcQuestion("q1", 0), mcQuestion("q2", 1))
	if _, err := HandleAnswer(state, "1"); err != nil {
		t.Fatalf("HandleAnswer: %v", err)
	}
	if _, err := HandleAnswer(state, "1"); !errors.Is(err, ErrNotAnswering) {
		t.Errorf("second answer during feedback: err = %v, want ErrNotAnswering", err)
	}
}

func TestBuildSummary(t *testing.T) {
	state := testState(mcQuestion("q1", 0), mcQuestion("q2", 1), mcQuestion("q3", 2))
	HandleAnswer(state, "1")
	Advance(state)
	HandleAnswer(state, "1")
	Quit(state)

	sum := BuildSummary(state)
	if sum.TotalQuestions != 2 || sum.TotalCorrect != 1 {
		t.Errorf("summary = %d/%d, want 1/2", sum.TotalCorrect, sum.TotalQuestions)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if sum.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", sum.Skipped)
	}
	if sum.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", sum.Duration)
	}
}

func TestFinish_PlaySavesMisses(t *testing.T) {
	state := testState(mcQuestion("q1", 0), mcQuestion("q2", 1))
	HandleAnswer(state, "2")
	Advance(state)
	HandleAnswer(state, "2")
	Advance(state)

	bank := &fakeBank{}
	sum, err := Finish(context.Background(), state, bank, nil)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(bank.saved) != 1 || len(bank.saved[0]) != 1 || bank.saved[0][0].Prompt() != "q1" {
		t.Errorf("saved = %v, want [[q1]]", bank.saved)
	}
	if sum.Artifact != "MyError000001.json" {
		t.Errorf("Artifact = %q", sum.Artifact)
	}
}

func TestFinish_ReviewKeepsMissedAndUnreached(t *testing.T) {
	qs := []question.Question{mcQuestion("q1", 0), mcQuestion("q2", 1), mcQuestion("q3", 2)}
	state := NewReviewState("review-id", "MyError000004.json", qs)
	HandleAnswer(state, "1") // right, drops out
	Advance(state)
	HandleAnswer(state, "1") // wrong, stays
	Quit(state)              // q3 never reached, stays

	bank := &fakeBank{}
	sum, err := Finish(context.Background(), state, bank, nil)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got := bank.updated["MyError000004.json"]
	if len(got) != 2 || got[0].Prompt() != "q2" || got[1].Prompt() != "q3" {
		t.Errorf("updated = %v, want [q2 q3]", got)
	}
	if sum.Cleared {
		t.Error("artifact should not be cleared")
	}
}

func TestFinish_ReviewAllCorrectClears(t *testing.T) {
	state := NewReviewState("review-id", "MyError000002.json", []question.Question{mcQuestion("q1", 0)})
	HandleAnswer(state, "1")
	Advance(state)

	bank := &fakeBank{}
	sum, err := Finish(context.Background(), state, bank, nil)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !sum.Cleared {
		t.Error("expected artifact to be cleared")
	}
	if got, ok := bank.updated["MyError000002.json"]; !ok || len(got) != 0 {
		t.Errorf("updated = %v, want empty", got)
	}
}

func TestFinish_BankErrorIsReported(t *testing.T) {
	state := testState(mcQuestion("q1", 0))
	HandleAnswer(state, "2")
	Advance(state)

	sum, err := Finish(context.Background(), state, &fakeBank{err: errors.New("disk full")}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if sum == nil || sum.TotalQuestions != 1 {
		t.Errorf("summary should still be built, got %+v", sum)
	}
}

func TestFinish_WritesArtifactAndHistory(t *testing.T) {
	dir := t.TempDir()
	bank := errorbank.New(filepath.Join(dir, "Errors"))
	st, err := store.Open(filepath.Join(dir, "quizbox.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	repo := st.HistoryRepo()
	ctx := context.Background()

	state := testState(mcQuestion("q1", 0), matchingQuestion("q2"))
	HandleAnswer(state, "1")
	Advance(state)
	HandleAnswer(state, "2 1")
	Advance(state)
	HandleAnswer(state, "x") // ignored once done

	sum, err := Finish(ctx, state, bank, repo)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.Artifact != "" {
		t.Errorf("no misses should write no artifact, got %q", sum.Artifact)
	}
	if n, _ := bank.Len(); n != 0 {
		t.Errorf("bank has %d artifacts, want 0", n)
	}

	recent, err := repo.RecentSessions(ctx, 5)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(recent) != 1 || recent[0].Correct != 2 || recent[0].Total != 2 {
		t.Errorf("recent = %+v", recent)
	}
}
