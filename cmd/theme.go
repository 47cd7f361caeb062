package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/themes"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage quiz themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		all := e.Themes.Registry().All()
		fmt.Fprintf(out, "%-24s  %s\n", "Name", "Path")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, t := range all {
			fmt.Fprintf(out, "%-24s  %s\n", t.Name, t.Path)
		}
		fmt.Fprintf(out, "\n%d themes\n", len(all))
		return nil
	},
}

var themeAddCmd = &cobra.Command{
	Use:   "add <name> <folder>",
	Short: "Register a folder of quiz files as a theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name == themes.ErrorsThemeName {
			return fmt.Errorf("%q is reserved for the error bank", name)
		}
		path, err := themes.ResolveFolder(args[1])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Themes.Add(name, path); err != nil {
			return err
		}
		e.Log.Info("theme added", "theme", name, "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q -> %s\n", name, path)
		return nil
	},
}

var themeRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], args[1]
		if oldName == themes.ErrorsThemeName || newName == themes.ErrorsThemeName {
			return fmt.Errorf("%q is reserved for the error bank", themes.ErrorsThemeName)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Themes.Rename(oldName, newName); err != nil {
			return err
		}
		e.Log.Info("theme renamed", "from", oldName, "to", newName)
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", oldName, newName)
		return nil
	},
}

var themeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a theme from the registry (the folder is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name == themes.ErrorsThemeName {
			return fmt.Errorf("%q is reserved for the error bank", name)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Themes.Delete(name); err != nil {
			return err
		}
		e.Log.Info("theme deleted", "theme", name)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", name)
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeAddCmd)
	themeCmd.AddCommand(themeRenameCmd)
	themeCmd.AddCommand(themeDeleteCmd)
}
