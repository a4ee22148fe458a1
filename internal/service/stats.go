package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/internal/stats"
)

const (
	recentOrdersLimit    = 5
	defaultTopBuyerLimit = 10
	maxTopBuyerLimit     = 100
)

// StatsService recomputes statistics from ledger scans on every call.
type StatsService struct {
	orders OrderRepository
	users  UserRepository
}

func NewStatsService(orders OrderRepository, users UserRepository) *StatsService {
	return &StatsService{orders: orders, users: users}
}

// Overview summarizes every order with a status breakdown and the most recent orders.
func (s *StatsService) Overview(ctx context.Context) (model.OrderOverview, error) {
	orders, err := s.orders.ListOrders(ctx, model.OrderFilter{})
	if err != nil {
		return model.OrderOverview{}, err
	}

	recent := orders
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	return model.OrderOverview{
		Overview:        stats.Summarize(orders),
		StatusBreakdown: stats.StatusBreakdown(orders),
		RecentOrders:    recent,
	}, nil
}

// DateRange returns orders created in [from, to) with per-day totals.
// Zero bounds disable the range.
func (s *StatsService) DateRange(ctx context.Context, from, to time.Time) (model.DateRangeStats, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return model.DateRangeStats{}, model.Validationf("startDate must be before endDate")
	}

	orders, err := s.orders.ListOrders(ctx, model.OrderFilter{From: from, To: to})
	if err != nil {
		return model.DateRangeStats{}, err
	}
	return model.DateRangeStats{
		Orders:     orders,
		DailyStats: stats.Daily(orders),
	}, nil
}

// ForUser summarizes one user's orders.
func (s *StatsService) ForUser(ctx context.Context, id uuid.UUID) (model.UserStats, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return model.UserStats{}, err
	}
	orders, err := s.orders.ListOrders(ctx, model.OrderFilter{WalletAddress: user.WalletAddress})
	if err != nil {
		return model.UserStats{}, err
	}
	return stats.ForUser(orders), nil
}

// TopBuyers ranks users by purchases then spend.
func (s *StatsService) TopBuyers(ctx context.Context, limit int) ([]model.User, error) {
	switch {
	case limit <= 0:
		limit = defaultTopBuyerLimit
	case limit > maxTopBuyerLimit:
		limit = maxTopBuyerLimit
	}
	return s.users.TopBuyers(ctx, limit)
}
