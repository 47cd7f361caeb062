package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "quizbox",
	Short: "Personal quiz runner",
	Long:  "Quizbox runs multiple-choice and matching quizzes from folders of JSON files and keeps your mistakes for review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("home", "", "Data directory (overrides "+config.HomeEnv+" env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(errorsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --home (highest
// priority), then QUIZBOX_HOME, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("home"); p != "" {
		return p, config.EnsureDir(p)
	}
	return config.DefaultDataDir()
}
