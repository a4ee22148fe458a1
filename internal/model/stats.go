package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overview summarizes the whole order ledger.
type Overview struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// OrderOverview is the dashboard payload.
type OrderOverview struct {
	Overview        Overview            `json:"overview"`
	StatusBreakdown map[OrderStatus]int `json:"statusBreakdown"`
	RecentOrders    []Order             `json:"recentOrders"`
}

// DailyStat aggregates orders created on one UTC calendar day.
type DailyStat struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DateRangeStats lists orders in a range with their daily breakdown.
type DateRangeStats struct {
	Orders     []Order     `json:"orders"`
	DailyStats []DailyStat `json:"dailyStats"`
}

// UserStats summarizes one user's orders.
type UserStats struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	FirstOrder        *time.Time      `json:"firstOrder"`
	LastOrder         *time.Time      `json:"lastOrder"`
}
