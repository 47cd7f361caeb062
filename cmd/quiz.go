package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/question"
	"github.com/abhisek/quizbox/internal/quizstore"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Inspect quiz files",
}

var quizListCmd = &cobra.Command{
	Use:   "list <theme>",
	Short: "List the quiz files of a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		dir, ok := e.Themes.Registry().Get(args[0])
		if !ok {
			return fmt.Errorf("no theme named %q", args[0])
		}
		files, err := quizstore.List(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s  %-36s  %s\n", "#", "File", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for i, f := range files {
			count := fmt.Sprint(f.Count)
			if f.Err != nil {
				count = "unreadable"
			}
			fmt.Fprintf(out, "%-3d  %-36s  %s\n", i+1, f.Name, count)
		}
		fmt.Fprintf(out, "\n%d quizzes in %s\n", len(files), dir)
		return nil
	},
}

var quizCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate quiz files and report malformed records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			quiz, err := question.LoadFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
				continue
			}
			warnings := quiz.Warnings()
			status := "ok  "
			if len(warnings) > 0 {
				status = "warn"
			}
			fmt.Fprintf(out, "%s  %s: %d questions\n", status, path, len(quiz.Questions))
			for _, w := range warnings {
				fmt.Fprintf(out, "      %v\n", w)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be read", failed, len(args))
		}
		return nil
	},
}

func init() {
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizCheckCmd)
}
