package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
)

// auditRecentCmd represents the audit recent command
var auditRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the newest audit messages",
	Long: `Show the newest audit messages from the audit database.

Requires AUDIT_DATABASE_URL.

Example:
  substackctl audit recent
  substackctl audit recent --limit 50 --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		if err := showRecentAudit(os.Stdout, limit, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read audit messages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	auditCmd.AddCommand(auditRecentCmd)
	auditRecentCmd.Flags().IntP("limit", "n", 20, "Number of messages to show")
	auditRecentCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showRecentAudit(w io.Writer, limit int, output string) error {
	if limit < 1 {
		return fmt.Errorf("--limit must be positive")
	}

	st, err := audit.NewStore()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("AUDIT_DATABASE_URL is not set")
	}
	defer st.Close()

	messages, err := st.Recent(limit)
	if err != nil {
		return err
	}
	return writeAuditMessages(w, messages, output)
}

func writeAuditMessages(w io.Writer, messages []audit.Message, output string) error {
	switch output {
	case "json":
		if messages == nil {
			messages = []audit.Message{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(messages)
	case "text":
		for _, m := range messages {
			fmt.Fprintf(w, "%s %s %s\n", m.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), m.Msgid, m.Message)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
