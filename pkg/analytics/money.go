package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ForgottenThresholdDays is the idle period after which a subscription
// counts as unused in savings suggestions.
const ForgottenThresholdDays = 30

// MonthlyEquivalent converts a cost per billing cycle into a cost per month.
func MonthlyEquivalent(cost float64, cycle model.BillingCycle) float64 {
	switch cycle {
	case model.BillingCycleWeekly:
		return cost * 52 / 12
	case model.BillingCycleQuarterly:
		return cost / 3
	case model.BillingCycleYearly:
		return cost / 12
	default:
		return cost
	}
}

func monthlyCost(sub *model.Subscription) float64 {
	return MonthlyEquivalent(sub.Cost, sub.BillingCycle)
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CurrencyTotal is the sum of costs for one currency.
type CurrencyTotal struct {
	Currency          string  `json:"currency"`
	Total             float64 `json:"total"`
	MonthlyEquivalent float64 `json:"monthly_equivalent"`
}

// TotalsByCurrency sums raw costs and monthly equivalents per currency.
func TotalsByCurrency(subs []model.Subscription) []CurrencyTotal {
	type acc struct{ total, monthly float64 }
	totals := map[string]*acc{}
	for i := range subs {
		cur := subs[i].Currency.String()
		a, ok := totals[cur]
		if !ok {
			a = &acc{}
			totals[cur] = a
		}
		a.total += subs[i].Cost
		a.monthly += monthlyCost(&subs[i])
	}

	result := make([]CurrencyTotal, 0, len(totals))
	for _, cur := range sortedKeys(totals) {
		result = append(result, CurrencyTotal{
			Currency:          cur,
			Total:             Round2(totals[cur].total),
			MonthlyEquivalent: Round2(totals[cur].monthly),
		})
	}
	return result
}

// MonthsSince returns complete 30-day periods elapsed since t, never negative.
func MonthsSince(t *time.Time, now time.Time) int {
	if t == nil {
		return 0
	}
	days := daysBetween(*t, now)
	months := days / 30
	if months < 0 {
		return 0
	}
	return months
}

// daysBetween is the number of whole days from a to b, floored.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}

// DaysUntilRenewal is the number of calendar days from today to the billing date.
func DaysUntilRenewal(today time.Time, next model.Date) int {
	return model.NewDate(today).DaysUntil(next)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
