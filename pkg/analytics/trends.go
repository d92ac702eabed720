package analytics

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// DefaultTrendMonths is the window used by the combined report.
const DefaultTrendMonths = 6

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

type MonthlySpendingPoint struct {
	Month             string  `json:"month"`
	TotalMonthlyCost  float64 `json:"total_monthly_cost"`
	SubscriptionCount int     `json:"subscription_count"`
}

// SpendingTrend is one currency's series. TrendPercentage is nil when
// fewer than two months have any spending.
type SpendingTrend struct {
	Currency           string                 `json:"currency"`
	DataPoints         []MonthlySpendingPoint `json:"data_points"`
	AverageMonthlyCost float64                `json:"average_monthly_cost"`
	TrendDirection     string                 `json:"trend_direction"`
	TrendPercentage    *float64               `json:"trend_percentage"`
}

// SpendingTrends builds a series per currency over the last months
// months ending with today's month. Months without spending are zero.
func SpendingTrends(subs []model.Subscription, months int, today time.Time) []SpendingTrend {
	if months < 1 {
		months = 1
	}
	last := MonthOf(today)
	window := make([]Month, months)
	for i := range window {
		window[i] = last.Add(i - months + 1)
	}

	type point struct {
		total float64
		count int
	}
	series := map[string]map[string]*point{}
	for _, m := range window {
		start, end := m.Range()
		for i := range subs {
			sub := &subs[i]
			if !WasActiveInMonth(sub, start, end) {
				continue
			}
			cur := sub.Currency.String()
			if series[cur] == nil {
				series[cur] = map[string]*point{}
			}
			p, ok := series[cur][m.String()]
			if !ok {
				p = &point{}
				series[cur][m.String()] = p
			}
			p.total += monthlyCost(sub)
			p.count++
		}
	}

	result := make([]SpendingTrend, 0, len(series))
	for _, cur := range sortedKeys(series) {
		points := make([]MonthlySpendingPoint, 0, months)
		costs := make([]float64, 0, months)
		var sum float64
		for _, m := range window {
			dp := MonthlySpendingPoint{Month: m.String()}
			if p, ok := series[cur][m.String()]; ok {
				dp.TotalMonthlyCost = Round2(p.total)
				dp.SubscriptionCount = p.count
			}
			points = append(points, dp)
			costs = append(costs, dp.TotalMonthlyCost)
			sum += dp.TotalMonthlyCost
		}

		direction, pct := trendOf(costs)
		result = append(result, SpendingTrend{
			Currency:           cur,
			DataPoints:         points,
			AverageMonthlyCost: Round2(sum / float64(len(costs))),
			TrendDirection:     direction,
			TrendPercentage:    pct,
		})
	}
	return result
}

// trendOf compares the first and last non-zero costs with a 5% band.
func trendOf(costs []float64) (string, *float64) {
	var nonZero []float64
	for _, c := range costs {
		if c > 0 {
			nonZero = append(nonZero, c)
		}
	}
	if len(nonZero) < 2 {
		return TrendStable, nil
	}

	first, last := nonZero[0], nonZero[len(nonZero)-1]
	var pct float64
	direction := TrendStable
	switch {
	case last > first*1.05:
		direction = TrendIncreasing
		pct = (last - first) / first * 100
	case last < first*0.95:
		direction = TrendDecreasing
		pct = (first - last) / first * -100
	}
	pct = Round2(pct)
	return direction, &pct
}
