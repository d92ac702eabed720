package analytics

import (
	"sort"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

type RankedSubscription struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	MonthlyCost       float64 `json:"monthly_cost"`
	Currency          string  `json:"currency"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

type TopSubscriptions struct {
	Currency         string               `json:"currency"`
	Subscriptions    []RankedSubscription `json:"subscriptions"`
	TotalMonthlyCost float64              `json:"total_monthly_cost"`
}

// DefaultTopLimit is the number of ranked subscriptions per currency.
const DefaultTopLimit = 5

// Top ranks active subscriptions by monthly cost within each currency and
// keeps the first limit. The total and percentages cover every active
// subscription of the currency, not just the ranked ones.
func Top(subs []model.Subscription, limit int) []TopSubscriptions {
	type ranked struct {
		sub     *model.Subscription
		monthly float64
	}
	byCurrency := map[string][]ranked{}
	for i := range subs {
		sub := &subs[i]
		if !sub.IsActive() {
			continue
		}
		cur := sub.Currency.String()
		byCurrency[cur] = append(byCurrency[cur], ranked{sub: sub, monthly: monthlyCost(sub)})
	}

	result := make([]TopSubscriptions, 0, len(byCurrency))
	for _, cur := range sortedKeys(byCurrency) {
		list := byCurrency[cur]
		sort.SliceStable(list, func(i, j int) bool { return list[i].monthly > list[j].monthly })

		var total float64
		for _, r := range list {
			total += r.monthly
		}
		if limit >= 0 && len(list) > limit {
			list = list[:limit]
		}

		items := make([]RankedSubscription, 0, len(list))
		for _, r := range list {
			var pct float64
			if total > 0 {
				pct = Round2(r.monthly / total * 100)
			}
			items = append(items, RankedSubscription{
				ID:                r.sub.ID,
				Name:              r.sub.Name,
				MonthlyCost:       Round2(r.monthly),
				Currency:          cur,
				PercentageOfTotal: pct,
			})
		}
		result = append(result, TopSubscriptions{
			Currency:         cur,
			Subscriptions:    items,
			TotalMonthlyCost: Round2(total),
		})
	}
	return result
}
