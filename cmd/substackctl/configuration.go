package main

import (
	"github.com/spf13/cobra"
)

// configurationCmd represents the configuration command
var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Manage SubStack configuration",
	Long: `Inspect and apply the SubStack configuration.

Configuration is read from $SUBSTACK_CONFIG_PATH/substack.yml and
overridden by SUBSTACK_* environment variables.`,
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}
