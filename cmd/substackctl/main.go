package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "substackctl",
	Short: "Run and manage the SubStack subscription tracker",
	Long: `Run and manage the SubStack subscription tracker.

Use "substackctl server" to start the API and the daily reminder job, and the
db, user, reminders and configuration commands to operate it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
