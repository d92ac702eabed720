package store

import (
	"context"
	"errors"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ErrSubscriptionNotFound is returned when a subscription doesn't exist or
// belongs to another user
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Status filters accepted by SubscriptionFilter.
const (
	StatusFilterActive    = "active"
	StatusFilterCancelled = "cancelled"
	StatusFilterAll       = "all"
)

// Sort keys accepted by SubscriptionFilter.
const (
	SortByNextBillingDate = "next_billing_date"
	SortByName            = "name"
	SortByCost            = "cost"
	SortByCreatedAt       = "created_at"
)

// SubscriptionFilter narrows a subscription listing. Zero values mean no
// filtering; Limit 0 means no limit.
type SubscriptionFilter struct {
	Status       string
	CategoryID   *uint
	Category     *string
	Search       string
	BillingCycle *model.BillingCycle
	CostMin      *float64
	CostMax      *float64
	SortBy       string
	Descending   bool
	Limit        int
	Offset       int
}

// SubscriptionPage is one page of a filtered listing. Matching holds every
// row the filter selects, ignoring Limit and Offset.
type SubscriptionPage struct {
	Items    []model.Subscription
	Matching []model.Subscription
}

// Scope selects which of a user's subscriptions a report reads.
type Scope int

const (
	// ScopeActive is active and not deleted.
	ScopeActive Scope = iota
	// ScopeCancelledPaid is cancelled, not deleted and not a free trial.
	ScopeCancelledPaid
	// ScopeLive is every subscription that is not deleted.
	ScopeLive
	// ScopeAll includes deleted subscriptions.
	ScopeAll
)

// SubscriptionsStore abstracts subscription storage
type SubscriptionsStore interface {
	// CreateSubscription inserts sub and opens its first price history row.
	CreateSubscription(ctx context.Context, sub *model.Subscription) error

	// GetSubscription returns subscription id of userID.
	// Deleted subscriptions are only returned when includeDeleted is set.
	GetSubscription(ctx context.Context, userID, id uint, includeDeleted bool) (*model.Subscription, error)

	// ListSubscriptions returns the live subscriptions of userID selected by filter.
	ListSubscriptions(ctx context.Context, userID uint, filter SubscriptionFilter) (*SubscriptionPage, error)

	// ListUpcoming returns active subscriptions of userID billing between
	// from and to inclusive, soonest first.
	ListUpcoming(ctx context.Context, userID uint, from, to model.Date) ([]model.Subscription, error)

	// ListByScope returns the subscriptions of userID in scope.
	ListByScope(ctx context.Context, userID uint, scope Scope) ([]model.Subscription, error)

	// UpdateSubscription saves sub. When the price changed, the open price
	// history row is closed at now and a new one opened.
	UpdateSubscription(ctx context.Context, sub *model.Subscription, priceChanged bool, now time.Time) error

	// SaveSubscription saves sub without touching its price history.
	SaveSubscription(ctx context.Context, sub *model.Subscription) error

	// PriceHistory returns the price history of subscription id, newest first.
	PriceHistory(ctx context.Context, id uint) ([]model.SubscriptionPriceHistory, error)
}
