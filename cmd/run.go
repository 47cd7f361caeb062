package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/screens/review"
)

// runApp opens the environment and launches the TUI. With review set
// the error review list is shown on top of the main menu.
func runApp(cmd *cobra.Command, reviewFirst bool) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{Env: e.Env}
	if reviewFirst {
		opts.Initial = review.New(e.Env)
	}
	return app.Run(opts)
}
