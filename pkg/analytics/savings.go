package analytics

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// EstimatedSavings is what a single cancellation has saved so far.
type EstimatedSavings struct {
	Currency                string  `json:"currency"`
	MonthlyAmount           float64 `json:"monthly_amount"`
	TotalSaved              float64 `json:"total_saved"`
	MonthsSinceCancellation int     `json:"months_since_cancellation"`
}

// EstimateSavings reports the savings of a cancelled subscription as of now.
func EstimateSavings(sub *model.Subscription, now time.Time) EstimatedSavings {
	monthly := monthlyCost(sub)
	months := MonthsSince(sub.CancelledAt, now)
	return EstimatedSavings{
		Currency:                sub.Currency.String(),
		MonthlyAmount:           Round2(monthly),
		TotalSaved:              Round2(monthly * float64(months)),
		MonthsSinceCancellation: months,
	}
}

// CurrencySavings aggregates cancellations in one currency. The months
// value is the mean across the cancelled subscriptions.
type CurrencySavings struct {
	Currency                string  `json:"currency"`
	MonthlyAmount           float64 `json:"monthly_amount"`
	TotalSaved              float64 `json:"total_saved"`
	MonthsSinceCancellation float64 `json:"months_since_cancellation"`
}

type SavingsSummary struct {
	SavingsByCurrency []CurrencySavings `json:"savings_by_currency"`
	CancelledCount    int               `json:"cancelled_count"`
}

// Savings summarizes cancelled subscriptions. Callers exclude free trials
// and deleted rows before calling.
func Savings(cancelled []model.Subscription, now time.Time) SavingsSummary {
	type acc struct {
		monthly, total, months float64
		count                  int
	}
	byCurrency := map[string]*acc{}
	for i := range cancelled {
		sub := &cancelled[i]
		monthly := monthlyCost(sub)
		months := MonthsSince(sub.CancelledAt, now)

		a, ok := byCurrency[sub.Currency.String()]
		if !ok {
			a = &acc{}
			byCurrency[sub.Currency.String()] = a
		}
		a.monthly += monthly
		a.total += monthly * float64(months)
		a.months += float64(months)
		a.count++
	}

	list := make([]CurrencySavings, 0, len(byCurrency))
	for _, cur := range sortedKeys(byCurrency) {
		a := byCurrency[cur]
		list = append(list, CurrencySavings{
			Currency:                cur,
			MonthlyAmount:           Round2(a.monthly),
			TotalSaved:              Round2(a.total),
			MonthsSinceCancellation: a.months / float64(a.count),
		})
	}
	return SavingsSummary{SavingsByCurrency: list, CancelledCount: len(cancelled)}
}
