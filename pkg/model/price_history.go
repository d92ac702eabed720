package model

import (
	"time"
)

// SubscriptionPriceHistory is one period of a subscription's price. The row
// with a nil EffectiveTo is the current price.
type SubscriptionPriceHistory struct {
	ID             uint `gorm:"primaryKey"`
	SubscriptionID uint
	Cost           float64
	Currency       Currency
	BillingCycle   BillingCycle
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	CreatedAt      time.Time
}

func (p SubscriptionPriceHistory) TableName() string {
	return "subscription_price_history"
}

func PriceHistoryFor(sub *Subscription, from time.Time) *SubscriptionPriceHistory {
	return &SubscriptionPriceHistory{
		SubscriptionID: sub.ID,
		Cost:           sub.Cost,
		Currency:       sub.Currency,
		BillingCycle:   sub.BillingCycle,
		EffectiveFrom:  from,
	}
}
