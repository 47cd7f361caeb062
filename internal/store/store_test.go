package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestAppendAndRecentSessions(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := SessionRecord{
		ID:            "s1",
		Mode:          "play",
		Theme:         "Go",
		Sources:       []string{"basics.json", "channels.json"},
		Total:         4,
		Correct:       3,
		ErrorArtifact: "MyError000001.json",
		StartedAt:     base,
		FinishedAt:    base.Add(5 * time.Minute),
		Answers: []AnswerRecord{
			{Prompt: "q1", Kind: "multiple_choice", Correct: true, AnsweredAt: base.Add(time.Minute)},
			{Prompt: "q2", Kind: "matching", Correct: false, AnsweredAt: base.Add(2 * time.Minute)},
		},
	}
	second := SessionRecord{
		ID:         "s2",
		Mode:       "review",
		Theme:      "Review my errors",
		Sources:    []string{"MyError000001.json"},
		Total:      1,
		Correct:    0,
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Minute),
		Answers: []AnswerRecord{
			{Prompt: "q2", Kind: "matching", Correct: false, AnsweredAt: base.Add(time.Hour)},
		},
	}
	require.NoError(t, repo.AppendSession(ctx, first))
	require.NoError(t, repo.AppendSession(ctx, second))

	got, err := repo.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID, "most recent first")
	assert.Equal(t, first.Sources, got[1].Sources)
	assert.Equal(t, first.FinishedAt, got[1].FinishedAt)
	assert.Equal(t, "MyError000001.json", got[1].ErrorArtifact)
	assert.Empty(t, got[1].Answers)

	limited, err := repo.RecentSessions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestAppendSession_DuplicateIDRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()
	now := time.Now()

	rec := SessionRecord{ID: "dup", Mode: "play", Theme: "t", StartedAt: now, FinishedAt: now,
		Answers: []AnswerRecord{{Prompt: "p", Kind: "multiple_choice", AnsweredAt: now}}}
	require.NoError(t, repo.AppendSession(ctx, rec))
	assert.Error(t, repo.AppendSession(ctx, rec))

	var answers int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM answers").Scan(&answers))
	assert.Equal(t, 1, answers, "failed append must not leave answers behind")
}

func TestStatsAndMostMissed(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, stats.Accuracy())

	now := time.Now()
	for i, answers := range [][]AnswerRecord{
		{{Prompt: "hard", Correct: false}, {Prompt: "easy", Correct: true}, {Prompt: "medium", Correct: false}},
		{{Prompt: "hard", Correct: false}, {Prompt: "easy", Correct: true}, {Prompt: "medium", Correct: true}},
	} {
		correct := 0
		for j := range answers {
			answers[j].Kind = "multiple_choice"
			answers[j].AnsweredAt = now
			if answers[j].Correct {
				correct++
			}
		}
		require.NoError(t, repo.AppendSession(ctx, SessionRecord{
			ID: string(rune('a' + i)), Mode: "play", Theme: "t",
			Total: len(answers), Correct: correct, StartedAt: now, FinishedAt: now,
			Answers: answers,
		}))
	}

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Sessions: 2, Questions: 6, Correct: 3}, stats)
	assert.InDelta(t, 0.5, stats.Accuracy(), 1e-9)

	missed, err := repo.MostMissed(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []MissStat{
		{Prompt: "hard", Misses: 2, Attempts: 2},
		{Prompt: "medium", Misses: 1, Attempts: 2},
	}, missed)
}
