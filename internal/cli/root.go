package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cockpit",
	Short: "Vibe Cockpit - side project launch dashboard",
	Long: `Vibe Cockpit tracks your side projects, their launch checklists, and
changelogs from the terminal.

Configure the server with 'cockpit server <url>' and sign in with
'cockpit login' before using the other commands.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(generateCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
