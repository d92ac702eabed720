package store

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ReminderCandidate is an active subscription together with its owner.
type ReminderCandidate struct {
	Subscription model.Subscription
	User         model.User
}

// RemindersStore abstracts reminder log storage
type RemindersStore interface {
	// ListReminderLogs returns a page of the reminder logs of userID, newest
	// first, and the total number of logs.
	ListReminderLogs(ctx context.Context, userID uint, limit, offset int) ([]model.ReminderLog, int64, error)

	// RemindedSubscriptions reports, per subscription id, whether a reminder
	// for the current billing date of that subscription was sent.
	RemindedSubscriptions(ctx context.Context, subs []model.Subscription) (map[uint]bool, error)

	// ReminderCandidates returns every active, live subscription with its user.
	ReminderCandidates(ctx context.Context) ([]ReminderCandidate, error)

	// HasReminder reports whether any reminder log exists for subscriptionID
	// and scheduledFor.
	HasReminder(ctx context.Context, subscriptionID uint, scheduledFor time.Time) (bool, error)

	// CreateReminderLogs inserts logs in a single transaction; either all
	// of them are written or none is.
	CreateReminderLogs(ctx context.Context, logs ...*model.ReminderLog) error
}
