package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/reminder"
	gormstore "github.com/doodlesbykumbi/substack-in-go/pkg/server/store/gorm"
)

func (s *StepsContext) iHaveASubscription(cycle, name, cost, currency string, days int) error {
	return s.createSubscription(cycle, name, cost, currency, days, nil)
}

func (s *StepsContext) iHaveASubscriptionWithReminder(cycle, name, cost, currency string, days, reminderDays int) error {
	return s.createSubscription(cycle, name, cost, currency, days, &reminderDays)
}

func (s *StepsContext) createSubscription(cycle, name, cost, currency string, days int, reminderDays *int) error {
	amount, err := strconv.ParseFloat(cost, 64)
	if err != nil {
		return err
	}
	payload := map[string]interface{}{
		"name":              name,
		"cost":              amount,
		"currency":          currency,
		"billing_cycle":     cycle,
		"next_billing_date": model.Today().AddDays(days).String(),
	}
	if reminderDays != nil {
		payload["reminder_days_before"] = *reminderDays
	}

	if err := s.doJSON(http.MethodPost, "/subscriptions", payload); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("creating %s failed with %d: %s", name, s.response.StatusCode, string(s.responseBody))
	}
	return s.recordID(name)
}

func (s *StepsContext) iCreateACategory(name, icon, color string) error {
	err := s.doJSON(http.MethodPost, "/categories", map[string]string{
		"name":  name,
		"icon":  icon,
		"color": color,
	})
	if err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		return s.recordID(name)
	}
	return nil
}

// recordID remembers the id of the resource in the last response.
func (s *StepsContext) recordID(name string) error {
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(s.responseBody, &created); err != nil {
		return err
	}
	s.ids[name] = created.ID
	return nil
}

// theReminderJobRuns runs the reminder processor against the test database
// with email delivery in dry-run mode.
func (s *StepsContext) theReminderJobRuns() error {
	processor := reminder.NewProcessor(gormstore.NewRemindersStore(s.tc.DB), reminder.DryRunSender{}, nil)
	summary, err := processor.Run(context.Background(), model.Today())
	if err != nil {
		return err
	}
	s.summary = summary
	return nil
}

func (s *StepsContext) theReminderSummaryShows(due, sent int) error {
	if s.summary.Due != due || s.summary.EmailsSent != sent {
		return fmt.Errorf("expected %d due and %d sent, got %+v", due, sent, s.summary)
	}
	return nil
}
