package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "herald is a Discord announcement and command bot",
	Long: `herald connects a Discord application to your operations channels. It
serves the same command set over message prefixes and slash commands, routes
long-form feedback to channels, interaction follow-ups, and direct messages,
and posts scheduled announcements on cron expressions.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
