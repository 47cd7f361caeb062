package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the quiz menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		reviewFirst, _ := cmd.Flags().GetBool("review")
		return runApp(cmd, reviewFirst)
	},
}

func init() {
	playCmd.Flags().Bool("review", false, "Start on the error review list")
}
