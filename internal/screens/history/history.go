package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const (
	recentLimit = 50
	missedLimit = 5
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Stats    store.Stats
	Missed   []store.MissStat
	Err      error
}

// HistoryScreen displays past sessions and the most missed questions.
type HistoryScreen struct {
	repo     store.HistoryRepo
	sessions []store.SessionRecord
	stats    store.Stats
	missed   []store.MissStat
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil repo shows that history is
// unavailable.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.RecentSessions(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		missed, err := repo.MostMissed(ctx, missedLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: sessions, Stats: stats, Missed: missed}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.stats = msg.Stats
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Cmd(router.PopScreenMsg{})
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.repo == nil:
		return layout.Block("\n"+theme.Hint.Render("History is unavailable: the history database could not be opened."), width)
	case s.errMsg != "":
		return layout.Block("\n"+theme.ErrorText.Render("Error: "+s.errMsg), width)
	case !s.loaded:
		return layout.Block("\n"+theme.Hint.Render("Loading history..."), width)
	case len(s.sessions) == 0:
		return layout.Block("\n"+theme.Hint.Render("No sessions yet. Take a quiz!"), width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("%d sessions   %d questions   %.0f%% correct",
		s.stats.Sessions, s.stats.Questions, s.stats.Accuracy()*100)))
	b.WriteString("\n\n")

	// Keep the selected row visible when the list is longer than the screen.
	visible := max(height-8-len(s.missed), 3)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.sessions) && i < start+visible; i++ {
		rec := s.sessions[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		dur := rec.FinishedAt.Sub(rec.StartedAt)
		line := fmt.Sprintf("%s%s  %-6s  %-20s  %d/%d  %d:%02d",
			prefix, rec.StartedAt.Local().Format("Jan 02 15:04"), rec.Mode, truncate(rec.Theme, 20),
			rec.Correct, rec.Total, int(dur.Minutes()), int(dur.Seconds())%60)
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(theme.Hint.Render("    from: " + strings.Join(rec.Sources, ", ")))
			b.WriteString("\n")
			if rec.ErrorArtifact != "" {
				b.WriteString(theme.Hint.Render("    error set: " + rec.ErrorArtifact))
				b.WriteString("\n")
			}
		}
	}

	if len(s.missed) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Most missed"))
		b.WriteString("\n")
		for _, m := range s.missed {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  %d/%d  ", m.Misses, m.Attempts)))
			b.WriteString(theme.Body.Render(truncate(m.Prompt, layout.ContentWidth(width)-12)))
			b.WriteString("\n")
		}
	}

	return layout.Block(b.String(), width)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
