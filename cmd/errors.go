package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Inspect the error bank",
}

var errorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved error sets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		names, err := e.Bank.List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No saved errors.")
			return nil
		}
		fmt.Fprintf(out, "%-22s  %s\n", "Error set", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 34))
		for _, name := range names {
			count := "unreadable"
			if quiz, err := e.Bank.Load(name); err == nil {
				count = fmt.Sprint(len(quiz.Questions))
			}
			fmt.Fprintf(out, "%-22s  %s\n", name, count)
		}
		fmt.Fprintf(out, "\n%d of %d slots used in %s\n", len(names), e.Bank.Capacity(), e.Bank.Dir())
		return nil
	},
}

func init() {
	errorsCmd.AddCommand(errorsListCmd)
}
