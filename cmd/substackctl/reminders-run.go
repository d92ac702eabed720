package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/db"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/reminder"
	gormstore "github.com/doodlesbykumbi/substack-in-go/pkg/server/store/gorm"
)

// remindersRunCmd represents the reminders run command
var remindersRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the renewal reminder job once",
	Long: `Run the renewal reminder job once, outside the server's daily schedule.

Reminders already logged for a renewal are not sent again, so the job is
safe to re-run. Without SUBSTACK_RESEND_API_KEY emails are logged as sent
with a dry-run id instead of being delivered.

Example:
  substackctl reminders run
  substackctl reminders run --date 2025-03-12`,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")

		today := model.Today()
		if date != "" {
			d, err := model.ParseDate(date)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid --date %q: %v\n", date, err)
				os.Exit(1)
			}
			today = d
		}

		if err := runReminders(cmd.Context(), os.Stdout, today); err != nil {
			fmt.Fprintf(os.Stderr, "Reminder job failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	remindersCmd.AddCommand(remindersRunCmd)
	remindersRunCmd.Flags().String("date", "", "Run as if today were this date (YYYY-MM-DD)")
}

func runReminders(ctx context.Context, w io.Writer, today model.Date) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	processor := reminder.NewProcessor(
		gormstore.NewRemindersStore(database),
		reminder.NewSender(config.Get()),
		nil,
	)
	summary, err := processor.Run(ctx, today)
	if err != nil {
		return err
	}
	printSummary(w, today, summary)
	return nil
}

func printSummary(w io.Writer, today model.Date, s reminder.Summary) {
	fmt.Fprintf(w, "Reminder run for %s\n", today)
	fmt.Fprintf(w, "  checked:        %d\n", s.Checked)
	fmt.Fprintf(w, "  due:            %d\n", s.Due)
	fmt.Fprintf(w, "  already sent:   %d\n", s.AlreadySent)
	fmt.Fprintf(w, "  emails sent:    %d\n", s.EmailsSent)
	fmt.Fprintf(w, "  emails failed:  %d\n", s.EmailsFailed)
	fmt.Fprintf(w, "  emails skipped: %d\n", s.EmailsSkipped)
	fmt.Fprintf(w, "  errors:         %d\n", s.Errors)
}
