package main

import (
	"github.com/spf13/cobra"
)

// remindersCmd represents the reminders command
var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Operate the renewal reminder job",
}

func init() {
	rootCmd.AddCommand(remindersCmd)
}
