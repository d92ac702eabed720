package gorm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// Ensure RemindersStore implements store.RemindersStore
var _ store.RemindersStore = (*RemindersStore)(nil)

// RemindersStore implements store.RemindersStore using GORM
type RemindersStore struct {
	db *gorm.DB
}

// NewRemindersStore creates a new RemindersStore
func NewRemindersStore(db *gorm.DB) *RemindersStore {
	return &RemindersStore{db: db}
}

func (s *RemindersStore) ListReminderLogs(ctx context.Context, userID uint, limit, offset int) ([]model.ReminderLog, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.ReminderLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.ReminderLog
	err := db.Where("user_id = ?", userID).
		Order("sent_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *RemindersStore) RemindedSubscriptions(ctx context.Context, subs []model.Subscription) (map[uint]bool, error) {
	reminded := make(map[uint]bool, len(subs))
	if len(subs) == 0 {
		return reminded, nil
	}

	due := make(map[uint]time.Time, len(subs))
	ids := make([]uint, 0, len(subs))
	for _, sub := range subs {
		due[sub.ID] = sub.NextBillingDate.Midnight()
		ids = append(ids, sub.ID)
	}

	var logs []model.ReminderLog
	err := s.db.WithContext(ctx).
		Where("subscription_id IN ? AND status = ?", ids, model.ReminderStatusSent).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	for _, log := range logs {
		if when, ok := due[log.SubscriptionID]; ok && log.ScheduledFor.Equal(when) {
			reminded[log.SubscriptionID] = true
		}
	}
	return reminded, nil
}

func (s *RemindersStore) ReminderCandidates(ctx context.Context) ([]store.ReminderCandidate, error) {
	db := s.db.WithContext(ctx)

	var subs []model.Subscription
	err := db.Where("deleted_at IS NULL AND status = ?", model.SubscriptionStatusActive).
		Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	userIDs := make([]uint, 0, len(subs))
	seen := map[uint]bool{}
	for _, sub := range subs {
		if !seen[sub.UserID] {
			seen[sub.UserID] = true
			userIDs = append(userIDs, sub.UserID)
		}
	}

	var users []model.User
	if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	candidates := make([]store.ReminderCandidate, 0, len(subs))
	for _, sub := range subs {
		user, ok := byID[sub.UserID]
		if !ok {
			continue
		}
		candidates = append(candidates, store.ReminderCandidate{Subscription: sub, User: user})
	}
	return candidates, nil
}

func (s *RemindersStore) HasReminder(ctx context.Context, subscriptionID uint, scheduledFor time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ReminderLog{}).
		Where("subscription_id = ? AND scheduled_for = ?", subscriptionID, scheduledFor).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RemindersStore) CreateReminderLogs(ctx context.Context, logs ...*model.ReminderLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, log := range logs {
			if err := tx.Create(log).Error; err != nil {
				return fmt.Errorf("failed to create %s reminder log: %w", log.ReminderType, err)
			}
		}
		return nil
	})
}
