// Package stats aggregates order ledger scans into dashboard figures.
package stats

import (
	"sort"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// Summarize returns count, revenue and average order value.
func Summarize(orders []model.Order) model.Overview {
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.TransactionAmount)
	}
	return model.Overview{
		TotalOrders:       len(orders),
		TotalRevenue:      revenue,
		AverageOrderValue: average(revenue, len(orders)),
	}
}

// StatusBreakdown counts orders per order status.
func StatusBreakdown(orders []model.Order) map[model.OrderStatus]int {
	breakdown := make(map[model.OrderStatus]int)
	for _, o := range orders {
		breakdown[o.OrderStatus]++
	}
	return breakdown
}

// Daily groups orders by UTC calendar day of creation, ascending by date.
func Daily(orders []model.Order) []model.DailyStat {
	byDay := make(map[string]*model.DailyStat)
	for _, o := range orders {
		day := o.CreatedAt.UTC().Format(dayLayout)
		stat, ok := byDay[day]
		if !ok {
			stat = &model.DailyStat{Date: day, Revenue: decimal.Zero}
			byDay[day] = stat
		}
		stat.Count++
		stat.Revenue = stat.Revenue.Add(o.TransactionAmount)
	}

	out := make([]model.DailyStat, 0, len(byDay))
	for _, stat := range byDay {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ForUser summarizes one user's orders.
func ForUser(orders []model.Order) model.UserStats {
	summary := Summarize(orders)
	stats := model.UserStats{
		TotalOrders:       summary.TotalOrders,
		TotalSpent:        summary.TotalRevenue,
		AverageOrderValue: summary.AverageOrderValue,
	}
	for i := range orders {
		created := orders[i].CreatedAt
		if stats.FirstOrder == nil || created.Before(*stats.FirstOrder) {
			stats.FirstOrder = &created
		}
		if stats.LastOrder == nil || created.After(*stats.LastOrder) {
			stats.LastOrder = &created
		}
	}
	return stats
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
