package schema

import (
	"encoding/json"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/analytics"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

type SubscriptionCreate struct {
	Name               string              `json:"name" validate:"required,min=1,max=100"`
	Cost               float64             `json:"cost" validate:"required,gt=0"`
	Currency           *model.Currency     `json:"currency"`
	BillingCycle       *model.BillingCycle `json:"billing_cycle" validate:"required"`
	NextBillingDate    *model.Date         `json:"next_billing_date" validate:"required,notpast"`
	Category           *string             `json:"category" validate:"omitempty,oneof=streaming software utilities gaming other"`
	CategoryID         *uint               `json:"category_id"`
	ReminderDaysBefore *int                `json:"reminder_days_before" validate:"omitempty,min=0,max=30"`
	WasFreeTrial       bool                `json:"was_free_trial"`
}

// ToModel builds a new active subscription owned by userID, applying defaults.
func (c *SubscriptionCreate) ToModel(userID uint) *model.Subscription {
	sub := &model.Subscription{
		UserID:             userID,
		Name:               c.Name,
		Cost:               c.Cost,
		Currency:           model.CurrencyUSD,
		BillingCycle:       *c.BillingCycle,
		NextBillingDate:    *c.NextBillingDate,
		Category:           c.Category,
		CategoryID:         c.CategoryID,
		ReminderDaysBefore: model.DefaultReminderDaysBefore,
		Status:             model.SubscriptionStatusActive,
		WasFreeTrial:       c.WasFreeTrial,
	}
	if c.Currency != nil {
		sub.Currency = *c.Currency
	}
	if c.ReminderDaysBefore != nil {
		sub.ReminderDaysBefore = *c.ReminderDaysBefore
	}
	return sub
}

// SubscriptionUpdate is a partial update. Only keys present in the request
// body are applied; category and category_id may be cleared with null.
type SubscriptionUpdate struct {
	Name               *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Cost               *float64            `json:"cost" validate:"omitempty,gt=0"`
	Currency           *model.Currency     `json:"currency"`
	BillingCycle       *model.BillingCycle `json:"billing_cycle"`
	NextBillingDate    *model.Date         `json:"next_billing_date" validate:"omitempty,notpast"`
	Category           *string             `json:"category" validate:"omitempty,oneof=streaming software utilities gaming other"`
	CategoryID         *uint               `json:"category_id"`
	ReminderDaysBefore *int                `json:"reminder_days_before" validate:"omitempty,min=0,max=30"`
	WasFreeTrial       *bool               `json:"was_free_trial"`

	present map[string]bool
}

func (u *SubscriptionUpdate) UnmarshalJSON(data []byte) error {
	type plain SubscriptionUpdate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*u = SubscriptionUpdate(p)
	u.present = make(map[string]bool, len(keys))
	for k := range keys {
		u.present[k] = true
	}
	return nil
}

// Has reports whether the request body carried key.
func (u *SubscriptionUpdate) Has(key string) bool {
	return u.present[key]
}

// ApplyTo mutates sub with the provided fields.
func (u *SubscriptionUpdate) ApplyTo(sub *model.Subscription) {
	if u.Name != nil {
		sub.Name = *u.Name
	}
	if u.Cost != nil {
		sub.Cost = *u.Cost
	}
	if u.Currency != nil {
		sub.Currency = *u.Currency
	}
	if u.BillingCycle != nil {
		sub.BillingCycle = *u.BillingCycle
	}
	if u.NextBillingDate != nil {
		sub.NextBillingDate = *u.NextBillingDate
	}
	if u.Has("category") {
		sub.Category = u.Category
	}
	if u.Has("category_id") {
		sub.CategoryID = u.CategoryID
	}
	if u.ReminderDaysBefore != nil {
		sub.ReminderDaysBefore = *u.ReminderDaysBefore
	}
	if u.WasFreeTrial != nil {
		sub.WasFreeTrial = *u.WasFreeTrial
	}
}

type CancellationRequest struct {
	Reason        *string     `json:"reason" validate:"omitempty,max=500"`
	EffectiveDate *model.Date `json:"effective_date"`
}

type ReactivateRequest struct {
	NextBillingDate *model.Date `json:"next_billing_date" validate:"omitempty,notpast"`
}

type SubscriptionResponse struct {
	ID                        uint                     `json:"id"`
	UserID                    uint                     `json:"user_id"`
	Name                      string                   `json:"name"`
	Cost                      float64                  `json:"cost"`
	Currency                  model.Currency           `json:"currency"`
	BillingCycle              model.BillingCycle       `json:"billing_cycle"`
	NextBillingDate           model.Date               `json:"next_billing_date"`
	Category                  *string                  `json:"category"`
	CategoryID                *uint                    `json:"category_id"`
	ReminderDaysBefore        int                      `json:"reminder_days_before"`
	CreatedAt                 time.Time                `json:"created_at"`
	UpdatedAt                 time.Time                `json:"updated_at"`
	Status                    model.SubscriptionStatus `json:"status"`
	CancelledAt               *time.Time               `json:"cancelled_at"`
	CancellationReason        *string                  `json:"cancellation_reason"`
	CancellationEffectiveDate *model.Date              `json:"cancellation_effective_date"`
	WasFreeTrial              bool                     `json:"was_free_trial"`
	LastUsedAt                *time.Time               `json:"last_used_at"`
}

func FromSubscription(s *model.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                        s.ID,
		UserID:                    s.UserID,
		Name:                      s.Name,
		Cost:                      s.Cost,
		Currency:                  s.Currency,
		BillingCycle:              s.BillingCycle,
		NextBillingDate:           s.NextBillingDate,
		Category:                  s.Category,
		CategoryID:                s.CategoryID,
		ReminderDaysBefore:        s.ReminderDaysBefore,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
		Status:                    s.Status,
		CancelledAt:               s.CancelledAt,
		CancellationReason:        s.CancellationReason,
		CancellationEffectiveDate: s.CancellationEffectiveDate,
		WasFreeTrial:              s.WasFreeTrial,
		LastUsedAt:                s.LastUsedAt,
	}
}

type CancellationResponse struct {
	SubscriptionResponse
	EstimatedSavings *analytics.EstimatedSavings `json:"estimated_savings"`
}

type SubscriptionListResponse struct {
	Items            []SubscriptionResponse    `json:"items"`
	TotalCount       int64                     `json:"total_count"`
	Offset           int                       `json:"offset"`
	Limit            int                       `json:"limit"`
	TotalsByCurrency []analytics.CurrencyTotal `json:"totals_by_currency"`
}

// FromSubscriptionPage builds a list payload. all is the whole filtered set
// and feeds the currency totals; page is the requested slice of it.
func FromSubscriptionPage(page, all []model.Subscription, total int64, offset, limit int) SubscriptionListResponse {
	resp := SubscriptionListResponse{
		Items:            make([]SubscriptionResponse, 0, len(page)),
		TotalCount:       total,
		Offset:           offset,
		Limit:            limit,
		TotalsByCurrency: analytics.TotalsByCurrency(all),
	}
	for i := range page {
		resp.Items = append(resp.Items, FromSubscription(&page[i]))
	}
	return resp
}

type UpcomingSubscription struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Cost             float64    `json:"cost"`
	Currency         string     `json:"currency"`
	NextBillingDate  model.Date `json:"next_billing_date"`
	DaysUntilRenewal int        `json:"days_until_renewal"`
	ReminderSent     bool       `json:"reminder_sent"`
}

type UpcomingSubscriptionListResponse struct {
	Items      []UpcomingSubscription `json:"items"`
	TotalCount int                    `json:"total_count"`
}

// FromUpcoming builds the upcoming payload; reminded holds the ids whose
// reminder for the current billing date was already sent.
func FromUpcoming(subs []model.Subscription, reminded map[uint]bool, today time.Time) UpcomingSubscriptionListResponse {
	resp := UpcomingSubscriptionListResponse{Items: make([]UpcomingSubscription, 0, len(subs))}
	for i := range subs {
		s := &subs[i]
		resp.Items = append(resp.Items, UpcomingSubscription{
			ID:               s.ID,
			Name:             s.Name,
			Cost:             s.Cost,
			Currency:         s.Currency.String(),
			NextBillingDate:  s.NextBillingDate,
			DaysUntilRenewal: analytics.DaysUntilRenewal(today, s.NextBillingDate),
			ReminderSent:     reminded[s.ID],
		})
	}
	resp.TotalCount = len(resp.Items)
	return resp
}

type PriceHistoryEntry struct {
	ID            uint       `json:"id"`
	Cost          float64    `json:"cost"`
	Currency      string     `json:"currency"`
	BillingCycle  string     `json:"billing_cycle"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

type PriceHistoryResponse struct {
	SubscriptionID uint                `json:"subscription_id"`
	Items          []PriceHistoryEntry `json:"items"`
}

func FromPriceHistory(subscriptionID uint, rows []model.SubscriptionPriceHistory) PriceHistoryResponse {
	resp := PriceHistoryResponse{SubscriptionID: subscriptionID, Items: make([]PriceHistoryEntry, 0, len(rows))}
	for _, row := range rows {
		resp.Items = append(resp.Items, PriceHistoryEntry{
			ID:            row.ID,
			Cost:          row.Cost,
			Currency:      row.Currency.String(),
			BillingCycle:  row.BillingCycle.String(),
			EffectiveFrom: row.EffectiveFrom,
			EffectiveTo:   row.EffectiveTo,
		})
	}
	return resp
}
