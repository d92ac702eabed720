package analytics

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// SpendingReport is the combined analytics payload.
type SpendingReport struct {
	TrendsByCurrency           []SpendingTrend    `json:"trends_by_currency"`
	TopSubscriptionsByCurrency []TopSubscriptions `json:"top_subscriptions_by_currency"`
	ForgottenSubscriptions     ForgottenReport    `json:"forgotten_subscriptions"`
	SavingsSuggestions         SuggestionsReport  `json:"savings_suggestions"`
	GeneratedAt                time.Time          `json:"generated_at"`
}

// Combined builds every report from all of a user's subscriptions,
// deleted ones included, using default windows and limits.
func Combined(subs []model.Subscription, forgottenThresholdDays int, now time.Time) SpendingReport {
	active := make([]model.Subscription, 0, len(subs))
	for i := range subs {
		if subs[i].IsActive() {
			active = append(active, subs[i])
		}
	}

	return SpendingReport{
		TrendsByCurrency:           SpendingTrends(subs, DefaultTrendMonths, now),
		TopSubscriptionsByCurrency: Top(active, DefaultTopLimit),
		ForgottenSubscriptions:     Forgotten(active, forgottenThresholdDays, now),
		SavingsSuggestions:         Suggestions(subs, now),
		GeneratedAt:                now.UTC(),
	}
}
