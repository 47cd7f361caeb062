package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.History == nil {
			return errors.New("history database unavailable")
		}

		ctx := cmd.Context()
		stats, err := e.History.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sessions:  %d\nQuestions: %d\nCorrect:   %d (%.0f%%)\n",
			stats.Sessions, stats.Questions, stats.Correct, stats.Accuracy()*100)

		sessions, err := e.History.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Fprintf(out, "\n%-16s  %-6s  %-24s  %s\n", "Started", "Mode", "Theme", "Score")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, s := range sessions {
				fmt.Fprintf(out, "%-16s  %-6s  %-24s  %d/%d\n",
					s.StartedAt.Local().Format("2006-01-02 15:04"), s.Mode, s.Theme, s.Correct, s.Total)
			}
		}

		missed, err := e.History.MostMissed(ctx, 5)
		if err != nil {
			return fmt.Errorf("query misses: %w", err)
		}
		if len(missed) > 0 {
			fmt.Fprintln(out, "\nMost missed:")
			for _, m := range missed {
				fmt.Fprintf(out, "  %d/%d  %s\n", m.Misses, m.Attempts, m.Prompt)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
}
