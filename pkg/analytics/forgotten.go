package analytics

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ForgottenSubscription has not been marked as used within the threshold.
// DaysSinceUsed is nil when it was never used.
type ForgottenSubscription struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	MonthlyCost   float64    `json:"monthly_cost"`
	Currency      string     `json:"currency"`
	LastUsedAt    *time.Time `json:"last_used_at"`
	DaysSinceUsed *int       `json:"days_since_used"`
}

type ForgottenReport struct {
	Subscriptions     []ForgottenSubscription `json:"subscriptions"`
	TotalCount        int                     `json:"total_count"`
	TotalMonthlyWaste map[string]float64      `json:"total_monthly_waste"`
}

// isUnused reports whether sub was never used or last used at least
// thresholdDays ago, along with the elapsed days when known.
func isUnused(sub *model.Subscription, thresholdDays int, now time.Time) (bool, *int) {
	if sub.LastUsedAt == nil {
		return true, nil
	}
	days := daysBetween(*sub.LastUsedAt, now)
	return days >= thresholdDays, &days
}

// Forgotten lists active subscriptions unused for thresholdDays or more.
func Forgotten(subs []model.Subscription, thresholdDays int, now time.Time) ForgottenReport {
	report := ForgottenReport{
		Subscriptions:     []ForgottenSubscription{},
		TotalMonthlyWaste: map[string]float64{},
	}
	waste := map[string]float64{}

	for i := range subs {
		sub := &subs[i]
		if !sub.IsActive() {
			continue
		}
		unused, days := isUnused(sub, thresholdDays, now)
		if !unused {
			continue
		}
		monthly := monthlyCost(sub)
		report.Subscriptions = append(report.Subscriptions, ForgottenSubscription{
			ID:            sub.ID,
			Name:          sub.Name,
			MonthlyCost:   Round2(monthly),
			Currency:      sub.Currency.String(),
			LastUsedAt:    sub.LastUsedAt,
			DaysSinceUsed: days,
		})
		waste[sub.Currency.String()] += monthly
	}

	for cur, v := range waste {
		report.TotalMonthlyWaste[cur] = Round2(v)
	}
	report.TotalCount = len(report.Subscriptions)
	return report
}
