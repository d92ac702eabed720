package analytics

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// UncategorizedLabel groups subscriptions without a legacy category.
const UncategorizedLabel = "uncategorized"

type CategoryCost struct {
	Category          string  `json:"category"`
	MonthlyCost       float64 `json:"monthly_cost"`
	SubscriptionCount int     `json:"subscription_count"`
	FreeTrialCount    int     `json:"free_trial_count"`
}

type CurrencyMonthlyCost struct {
	Currency            string         `json:"currency"`
	TotalMonthlyCost    float64        `json:"total_monthly_cost"`
	ProjectedYearlyCost float64        `json:"projected_yearly_cost"`
	SubscriptionCount   int            `json:"subscription_count"`
	FreeTrialCount      int            `json:"free_trial_count"`
	Categories          []CategoryCost `json:"categories"`
}

// MonthComparison compares a currency's cost with the previous month.
// PercentageChange is nil when the previous month cost nothing.
type MonthComparison struct {
	Currency          string   `json:"currency"`
	CurrentMonthCost  float64  `json:"current_month_cost"`
	PreviousMonthCost float64  `json:"previous_month_cost"`
	Difference        float64  `json:"difference"`
	PercentageChange  *float64 `json:"percentage_change"`
}

type FreeTrialSubscription struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	Currency     string  `json:"currency"`
	Category     *string `json:"category"`
	BillingCycle string  `json:"billing_cycle"`
}

type MonthlyCostReport struct {
	Month                  string                  `json:"month"`
	CalculationDate        time.Time               `json:"calculation_date"`
	CostsByCurrency        []CurrencyMonthlyCost   `json:"costs_by_currency"`
	Comparison             []MonthComparison       `json:"comparison"`
	FreeTrials             []FreeTrialSubscription `json:"free_trials"`
	FreeTrialTotalCount    int                     `json:"free_trial_total_count"`
	TotalSubscriptionCount int                     `json:"total_subscription_count"`
	ActiveCount            int                     `json:"active_count"`
}

type categoryAcc struct {
	cost             float64
	subs, freeTrials int
}

type currencyAcc struct {
	cost             float64
	subs, freeTrials int
	categories       map[string]*categoryAcc
}

func accumulateCosts(subs []*model.Subscription, includeFreeTrials bool) (map[string]*currencyAcc, []FreeTrialSubscription, int) {
	byCurrency := map[string]*currencyAcc{}
	freeTrials := []FreeTrialSubscription{}
	freeTrialCount := 0

	for _, sub := range subs {
		cur := sub.Currency.String()
		category := UncategorizedLabel
		if sub.Category != nil && *sub.Category != "" {
			category = *sub.Category
		}

		c, ok := byCurrency[cur]
		if !ok {
			c = &currencyAcc{categories: map[string]*categoryAcc{}}
			byCurrency[cur] = c
		}
		cat, ok := c.categories[category]
		if !ok {
			cat = &categoryAcc{}
			c.categories[category] = cat
		}

		c.subs++
		cat.subs++

		if sub.WasFreeTrial {
			freeTrialCount++
			c.freeTrials++
			cat.freeTrials++
			if includeFreeTrials {
				freeTrials = append(freeTrials, FreeTrialSubscription{
					ID:           sub.ID,
					Name:         sub.Name,
					Cost:         sub.Cost,
					Currency:     cur,
					Category:     sub.Category,
					BillingCycle: sub.BillingCycle.String(),
				})
			}
			continue
		}

		monthly := monthlyCost(sub)
		c.cost += monthly
		cat.cost += monthly
	}
	return byCurrency, freeTrials, freeTrialCount
}

// MonthlyCosts builds the cost report for month from all of a user's
// subscriptions, deleted ones included. The current month counts active,
// non-deleted subscriptions; the previous month also counts those
// cancelled since.
func MonthlyCosts(subs []model.Subscription, month Month, includeFreeTrials bool, now time.Time) MonthlyCostReport {
	curStart, curEnd := month.Range()
	prevStart, prevEnd := month.Add(-1).Range()

	var current, previous []*model.Subscription
	for i := range subs {
		sub := &subs[i]
		if sub.IsDeleted() {
			continue
		}
		if WasActiveInMonth(sub, curStart, curEnd) && sub.Status == model.SubscriptionStatusActive {
			current = append(current, sub)
		}
		if WasActiveInMonth(sub, prevStart, prevEnd) {
			previous = append(previous, sub)
		}
	}

	curData, freeTrials, freeTrialCount := accumulateCosts(current, includeFreeTrials)
	prevData, _, _ := accumulateCosts(previous, false)

	costs := make([]CurrencyMonthlyCost, 0, len(curData))
	for _, cur := range sortedKeys(curData) {
		data := curData[cur]
		categories := make([]CategoryCost, 0, len(data.categories))
		for _, name := range sortedKeys(data.categories) {
			cat := data.categories[name]
			categories = append(categories, CategoryCost{
				Category:          name,
				MonthlyCost:       Round2(cat.cost),
				SubscriptionCount: cat.subs,
				FreeTrialCount:    cat.freeTrials,
			})
		}
		costs = append(costs, CurrencyMonthlyCost{
			Currency:            cur,
			TotalMonthlyCost:    Round2(data.cost),
			ProjectedYearlyCost: Round2(data.cost * 12),
			SubscriptionCount:   data.subs,
			FreeTrialCount:      data.freeTrials,
			Categories:          categories,
		})
	}

	union := map[string]struct{}{}
	for cur := range curData {
		union[cur] = struct{}{}
	}
	for cur := range prevData {
		union[cur] = struct{}{}
	}

	comparison := make([]MonthComparison, 0, len(union))
	for _, cur := range sortedKeys(union) {
		var curCost, prevCost float64
		if d, ok := curData[cur]; ok {
			curCost = d.cost
		}
		if d, ok := prevData[cur]; ok {
			prevCost = d.cost
		}
		diff := curCost - prevCost

		var pct *float64
		if prevCost > 0 {
			v := Round2(diff / prevCost * 100)
			pct = &v
		}
		comparison = append(comparison, MonthComparison{
			Currency:          cur,
			CurrentMonthCost:  Round2(curCost),
			PreviousMonthCost: Round2(prevCost),
			Difference:        Round2(diff),
			PercentageChange:  pct,
		})
	}

	active := 0
	for _, sub := range current {
		if !sub.WasFreeTrial {
			active++
		}
	}

	report := MonthlyCostReport{
		Month:                  month.String(),
		CalculationDate:        now.UTC(),
		CostsByCurrency:        costs,
		Comparison:             comparison,
		FreeTrials:             []FreeTrialSubscription{},
		TotalSubscriptionCount: len(current),
		ActiveCount:            active,
	}
	if includeFreeTrials {
		report.FreeTrials = freeTrials
		report.FreeTrialTotalCount = freeTrialCount
	}
	return report
}
