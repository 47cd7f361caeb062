package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SessionRecord is one finished quiz or review session.
type SessionRecord struct {
	ID            string
	Mode          string // "play" or "review"
	Theme         string
	Sources       []string // quiz files or the reviewed artifact
	Total         int
	Correct       int
	ErrorArtifact string // artifact written (play) or reviewed (review)
	StartedAt     time.Time
	FinishedAt    time.Time

	// Answers is written with the session and left empty by queries.
	Answers []AnswerRecord
}

// AnswerRecord is one answered question within a session.
type AnswerRecord struct {
	Prompt     string
	Kind       string
	Correct    bool
	AnsweredAt time.Time
}

// Stats aggregates all recorded sessions.
type Stats struct {
	Sessions  int
	Questions int
	Correct   int
}

// Accuracy returns Correct/Questions, or 0 with no questions.
func (s Stats) Accuracy() float64 {
	if s.Questions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Questions)
}

// MissStat counts how often a prompt was answered wrongly.
type MissStat struct {
	Prompt   string
	Misses   int
	Attempts int
}

// HistoryRepo persists and queries session history.
type HistoryRepo interface {
	// AppendSession stores a session and its answers atomically.
	AppendSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns up to limit sessions, most recent first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// Stats aggregates every stored session.
	Stats(ctx context.Context) (Stats, error)

	// MostMissed returns prompts with at least one miss, most missed first.
	MostMissed(ctx context.Context, limit int) ([]MissStat, error)
}

// historyRepo implements HistoryRepo with raw SQL.
type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	sources, err := json.Marshal(rec.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, theme, sources, total, correct, error_artifact, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Theme, string(sources), rec.Total, rec.Correct, rec.ErrorArtifact,
		formatTime(rec.StartedAt), formatTime(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	for _, a := range rec.Answers {
		correct := 0
		if a.Correct {
			correct = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO answers (session_id, prompt, kind, correct, answered_at) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, a.Prompt, a.Kind, correct, formatTime(a.AnsweredAt),
		)
		if err != nil {
			return fmt.Errorf("save answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mode, theme, sources, total, correct, error_artifact, started_at, finished_at
		 FROM sessions ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var sources, started, finished string
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Theme, &sources, &rec.Total, &rec.Correct,
			&rec.ErrorArtifact, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &rec.Sources); err != nil {
			return nil, fmt.Errorf("decode sources of %s: %w", rec.ID, err)
		}
		if rec.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if rec.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(correct), 0) FROM sessions`,
	).Scan(&s.Sessions, &s.Questions, &s.Correct)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return s, nil
}

func (r *historyRepo) MostMissed(ctx context.Context, limit int) ([]MissStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT prompt, SUM(1 - correct) AS misses, COUNT(*) AS attempts
		 FROM answers GROUP BY prompt HAVING misses > 0
		 ORDER BY misses DESC, attempts DESC, prompt ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query misses: %w", err)
	}
	defer rows.Close()

	var out []MissStat
	for rows.Next() {
		var m MissStat
		if err := rows.Scan(&m.Prompt, &m.Misses, &m.Attempts); err != nil {
			return nil, fmt.Errorf("scan miss: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
