package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// Summary counts what one run of the Processor did.
type Summary struct {
	Checked       int
	Due           int
	AlreadySent   int
	EmailsSent    int
	EmailsFailed  int
	EmailsSkipped int
	Errors        int
}

// Processor writes reminder logs and sends reminder emails for the
// subscriptions renewing in exactly reminder_days_before days.
type Processor struct {
	store   store.RemindersStore
	sender  Sender
	metrics *Metrics
	now     func() time.Time
}

func NewProcessor(reminders store.RemindersStore, sender Sender, metrics *Metrics) *Processor {
	return &Processor{
		store:   reminders,
		sender:  sender,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run processes every candidate for today. A failure on one subscription is
// logged and counted in Summary.Errors; only a failure to load the candidates
// is returned.
func (p *Processor) Run(ctx context.Context, today model.Date) (Summary, error) {
	var summary Summary
	log := logrus.WithField("date", today.String())
	log.Info("starting renewal reminder job")

	candidates, err := p.store.ReminderCandidates(ctx)
	if err != nil {
		p.metrics.runFinished(err)
		return summary, fmt.Errorf("loading reminder candidates: %w", err)
	}
	summary.Checked = len(candidates)
	log.Infof("found %d active subscriptions to check", len(candidates))

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			p.metrics.runFinished(err)
			return summary, err
		}

		c := &candidates[i]
		days := today.DaysUntil(c.Subscription.NextBillingDate)
		if days != c.Subscription.ReminderDaysBefore {
			continue
		}
		summary.Due++

		if err := p.remind(ctx, c, days, &summary); err != nil {
			summary.Errors++
			log.WithError(err).WithField("subscription_id", c.Subscription.ID).
				Error("error processing subscription reminder")
		}
	}

	p.metrics.runFinished(nil)
	log.WithFields(logrus.Fields{
		"due":            summary.Due,
		"emails_sent":    summary.EmailsSent,
		"emails_failed":  summary.EmailsFailed,
		"emails_skipped": summary.EmailsSkipped,
		"errors":         summary.Errors,
	}).Info("renewal reminder job completed")
	return summary, nil
}

func (p *Processor) remind(ctx context.Context, c *store.ReminderCandidate, days int, summary *Summary) error {
	sub, user := &c.Subscription, &c.User
	scheduledFor := sub.NextBillingDate.Midnight()

	exists, err := p.store.HasReminder(ctx, sub.ID, scheduledFor)
	if err != nil {
		return err
	}
	if exists {
		summary.AlreadySent++
		logrus.WithFields(logrus.Fields{
			"subscription_id": sub.ID,
			"scheduled_for":   scheduledFor,
		}).Debug("reminder already exists")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"user_id":         user.ID,
	}).Infof("processing reminder for %s", sub.Name)

	inApp := p.newLog(sub, model.ReminderTypeInApp, scheduledFor)
	inApp.Status = model.ReminderStatusSent

	email := p.newLog(sub, model.ReminderTypeEmail, scheduledFor)
	switch {
	case !user.EmailNotificationsEnabled:
		reason := model.EmailDisabledMessage
		email.Status = model.ReminderStatusSkipped
		email.ErrorMessage = &reason
		summary.EmailsSkipped++
	default:
		id, sendErr := p.send(ctx, user, sub, days)
		if sendErr != nil {
			msg := sendErr.Error()
			email.Status = model.ReminderStatusFailed
			email.ErrorMessage = &msg
			summary.EmailsFailed++
			logrus.WithError(sendErr).WithField("subscription_id", sub.ID).Error("failed to send reminder email")
		} else {
			email.Status = model.ReminderStatusSent
			email.EmailID = &id
			summary.EmailsSent++
		}
	}
	return p.writeLogs(ctx, inApp, email)
}

func (p *Processor) send(ctx context.Context, user *model.User, sub *model.Subscription, days int) (string, error) {
	msg, err := RenewalEmail(user, sub, days)
	if err != nil {
		return "", err
	}
	return p.sender.Send(ctx, msg)
}

func (p *Processor) newLog(sub *model.Subscription, t model.ReminderType, scheduledFor time.Time) *model.ReminderLog {
	return &model.ReminderLog{
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
		ReminderType:   t,
		ScheduledFor:   scheduledFor,
		SentAt:         p.now(),
	}
}

// writeLogs commits the reminder logs of one subscription together, so a
// partial write never marks the reminder as done.
func (p *Processor) writeLogs(ctx context.Context, logs ...*model.ReminderLog) error {
	if err := p.store.CreateReminderLogs(ctx, logs...); err != nil {
		return fmt.Errorf("writing reminder logs: %w", err)
	}
	for _, log := range logs {
		p.metrics.logWritten(log.ReminderType.String(), log.Status.String())
	}
	return nil
}
