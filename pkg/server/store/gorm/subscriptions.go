package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// Ensure SubscriptionsStore implements store.SubscriptionsStore
var _ store.SubscriptionsStore = (*SubscriptionsStore)(nil)

// SubscriptionsStore implements store.SubscriptionsStore using GORM
type SubscriptionsStore struct {
	db *gorm.DB
}

// NewSubscriptionsStore creates a new SubscriptionsStore
func NewSubscriptionsStore(db *gorm.DB) *SubscriptionsStore {
	return &SubscriptionsStore{db: db}
}

var sortColumns = map[string]string{
	store.SortByNextBillingDate: "next_billing_date",
	store.SortByName:            "name",
	store.SortByCost:            "cost",
	store.SortByCreatedAt:       "created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SubscriptionsStore) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		if err := tx.Create(model.PriceHistoryFor(sub, sub.CreatedAt)).Error; err != nil {
			return fmt.Errorf("failed to record price history: %w", err)
		}
		return nil
	})
}

func (s *SubscriptionsStore) GetSubscription(ctx context.Context, userID, id uint, includeDeleted bool) (*model.Subscription, error) {
	query := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var sub model.Subscription
	if err := query.First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// filtered builds a fresh query for the live subscriptions of userID
// selected by filter, in the requested order.
func (s *SubscriptionsStore) filtered(ctx context.Context, userID uint, filter store.SubscriptionFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", userID)

	switch filter.Status {
	case store.StatusFilterActive:
		query = query.Where("status = ?", model.SubscriptionStatusActive)
	case store.StatusFilterCancelled:
		query = query.Where("status = ?", model.SubscriptionStatusCancelled)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	} else if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+likeEscaper.Replace(filter.Search)+"%")
	}
	if filter.BillingCycle != nil {
		query = query.Where("billing_cycle = ?", *filter.BillingCycle)
	}
	if filter.CostMin != nil {
		query = query.Where("cost >= ?", *filter.CostMin)
	}
	if filter.CostMax != nil {
		query = query.Where("cost <= ?", *filter.CostMax)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[store.SortByNextBillingDate]
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	return query.Order(fmt.Sprintf("%s %s, id %s", column, direction, direction))
}

func (s *SubscriptionsStore) ListSubscriptions(ctx context.Context, userID uint, filter store.SubscriptionFilter) (*store.SubscriptionPage, error) {
	page := &store.SubscriptionPage{}
	if err := s.filtered(ctx, userID, filter).Find(&page.Matching).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	query := s.filtered(ctx, userID, filter).Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&page.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return page, nil
}

func (s *SubscriptionsStore) ListUpcoming(ctx context.Context, userID uint, from, to model.Date) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NULL AND status = ?", userID, model.SubscriptionStatusActive).
		Where("next_billing_date >= ? AND next_billing_date <= ?", from, to).
		Order("next_billing_date, id").
		Find(&subs).Error
	return subs, err
}

func (s *SubscriptionsStore) ListByScope(ctx context.Context, userID uint, scope store.Scope) ([]model.Subscription, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	switch scope {
	case store.ScopeActive:
		query = query.Where("deleted_at IS NULL AND status = ?", model.SubscriptionStatusActive)
	case store.ScopeCancelledPaid:
		query = query.Where("deleted_at IS NULL AND status = ? AND was_free_trial = ?", model.SubscriptionStatusCancelled, false)
	case store.ScopeLive:
		query = query.Where("deleted_at IS NULL")
	case store.ScopeAll:
	default:
		return nil, fmt.Errorf("unknown subscription scope %d", scope)
	}

	var subs []model.Subscription
	err := query.Order("id").Find(&subs).Error
	return subs, err
}

func (s *SubscriptionsStore) UpdateSubscription(ctx context.Context, sub *model.Subscription, priceChanged bool, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		if !priceChanged {
			return nil
		}

		err := tx.Model(&model.SubscriptionPriceHistory{}).
			Where("subscription_id = ? AND effective_to IS NULL", sub.ID).
			Update("effective_to", now).Error
		if err != nil {
			return fmt.Errorf("failed to close price history: %w", err)
		}
		if err := tx.Create(model.PriceHistoryFor(sub, now)).Error; err != nil {
			return fmt.Errorf("failed to record price history: %w", err)
		}
		return nil
	})
}

func (s *SubscriptionsStore) SaveSubscription(ctx context.Context, sub *model.Subscription) error {
	return s.db.WithContext(ctx).Save(sub).Error
}

func (s *SubscriptionsStore) PriceHistory(ctx context.Context, id uint) ([]model.SubscriptionPriceHistory, error) {
	var rows []model.SubscriptionPriceHistory
	err := s.db.WithContext(ctx).
		Where("subscription_id = ?", id).
		Order("effective_from DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
