package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

const (
	SuggestionUnused            = "unused"
	SuggestionHighCost          = "high_cost"
	SuggestionDuplicateCategory = "duplicate_category"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// highCostShare is the share of a currency's monthly total above which a
// single subscription is flagged.
const highCostShare = 0.25

type SavingsSuggestion struct {
	SubscriptionID          uint    `json:"subscription_id"`
	SubscriptionName        string  `json:"subscription_name"`
	MonthlyCost             float64 `json:"monthly_cost"`
	Currency                string  `json:"currency"`
	SuggestionType          string  `json:"suggestion_type"`
	Reason                  string  `json:"reason"`
	PotentialMonthlySavings float64 `json:"potential_monthly_savings"`
	Confidence              string  `json:"confidence"`
}

// SuggestionsReport lists suggestions. High cost suggestions are not
// counted in TotalPotentialSavings.
type SuggestionsReport struct {
	Suggestions           []SavingsSuggestion `json:"suggestions"`
	TotalPotentialSavings map[string]float64  `json:"total_potential_savings"`
}

// Suggestions flags unused, high cost and same-category subscriptions among
// the active ones in subs.
func Suggestions(subs []model.Subscription, now time.Time) SuggestionsReport {
	var active []*model.Subscription
	for i := range subs {
		if subs[i].IsActive() {
			active = append(active, &subs[i])
		}
	}

	totals := map[string]float64{}
	for _, sub := range active {
		totals[sub.Currency.String()] += monthlyCost(sub)
	}

	suggestions := []SavingsSuggestion{}
	savings := map[string]float64{}
	// currency -> legacy category -> subscriptions
	byCategory := map[string]map[string][]*model.Subscription{}

	for _, sub := range active {
		cur := sub.Currency.String()
		monthly := monthlyCost(sub)

		unused, _ := isUnused(sub, ForgottenThresholdDays, now)
		if unused {
			suggestions = append(suggestions, suggestionFor(sub, monthly, SuggestionUnused, ConfidenceHigh,
				fmt.Sprintf("This subscription hasn't been used in over %d days or was never marked as used.", ForgottenThresholdDays)))
			savings[cur] += monthly
		}

		if sub.Category != nil && *sub.Category != "" {
			if byCategory[cur] == nil {
				byCategory[cur] = map[string][]*model.Subscription{}
			}
			byCategory[cur][*sub.Category] = append(byCategory[cur][*sub.Category], sub)
		}

		total := totals[cur]
		if total > 0 && monthly/total > highCostShare && !unused {
			suggestions = append(suggestions, suggestionFor(sub, monthly, SuggestionHighCost, ConfidenceMedium,
				fmt.Sprintf("This subscription represents %.1f%% of your total %s spending.", round1(monthly/total*100), cur)))
		}
	}

	processed := map[string]bool{}
	for _, cur := range sortedKeys(byCategory) {
		cats := byCategory[cur]
		for _, category := range sortedKeys(cats) {
			list := cats[category]
			if len(list) < 2 || processed[category] {
				continue
			}
			processed[category] = true

			cheapest := append([]*model.Subscription(nil), list...)
			sort.SliceStable(cheapest, func(i, j int) bool { return monthlyCost(cheapest[i]) < monthlyCost(cheapest[j]) })
			sub := cheapest[0]
			monthly := monthlyCost(sub)

			suggestions = append(suggestions, suggestionFor(sub, monthly, SuggestionDuplicateCategory, ConfidenceMedium,
				fmt.Sprintf("You have %d subscriptions in the '%s' category. Consider consolidating.", len(list), category)))
			savings[sub.Currency.String()] += monthly
		}
	}

	report := SuggestionsReport{
		Suggestions:           suggestions,
		TotalPotentialSavings: map[string]float64{},
	}
	for cur, v := range savings {
		report.TotalPotentialSavings[cur] = Round2(v)
	}
	return report
}

func suggestionFor(sub *model.Subscription, monthly float64, kind, confidence, reason string) SavingsSuggestion {
	return SavingsSuggestion{
		SubscriptionID:          sub.ID,
		SubscriptionName:        sub.Name,
		MonthlyCost:             Round2(monthly),
		Currency:                sub.Currency.String(),
		SuggestionType:          kind,
		Reason:                  reason,
		PotentialMonthlySavings: Round2(monthly),
		Confidence:              confidence,
	}
}
