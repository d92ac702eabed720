package model

import (
	"time"
)

const DefaultReminderDaysBefore = 3

type Subscription struct {
	ID                        uint `gorm:"primaryKey"`
	UserID                    uint
	Name                      string
	Cost                      float64
	Currency                  Currency
	BillingCycle              BillingCycle
	NextBillingDate           Date `gorm:"type:date"`
	Category                  *string
	CategoryID                *uint
	ReminderDaysBefore        int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
	DeletedAt                 *time.Time
	Status                    SubscriptionStatus
	CancelledAt               *time.Time
	CancellationReason        *string
	CancellationEffectiveDate *Date `gorm:"type:date"`
	WasFreeTrial              bool
	LastUsedAt                *time.Time
}

func (s Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive && s.DeletedAt == nil
}

func (s *Subscription) IsCancelled() bool {
	return s.Status == SubscriptionStatusCancelled
}

func (s *Subscription) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Cancel marks the subscription cancelled at now. The effective date falls
// back to the next billing date.
func (s *Subscription) Cancel(now time.Time, reason *string, effective *Date) {
	s.Status = SubscriptionStatusCancelled
	s.CancelledAt = &now
	if reason != nil && *reason != "" {
		s.CancellationReason = reason
	}
	if effective != nil {
		s.CancellationEffectiveDate = effective
	} else {
		next := s.NextBillingDate
		s.CancellationEffectiveDate = &next
	}
}

// Reactivate clears every cancellation field and optionally moves the next
// billing date.
func (s *Subscription) Reactivate(nextBillingDate *Date) {
	s.Status = SubscriptionStatusActive
	s.CancelledAt = nil
	s.CancellationReason = nil
	s.CancellationEffectiveDate = nil
	if nextBillingDate != nil {
		s.NextBillingDate = *nextBillingDate
	}
}

// PriceChanged reports whether other differs in cost, currency or cycle.
func (s *Subscription) PriceChanged(other *Subscription) bool {
	return s.Cost != other.Cost || s.Currency != other.Currency || s.BillingCycle != other.BillingCycle
}
