package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// ListOrders returns orders newest first, narrowed by the filter.
// From is inclusive and To is exclusive.
func (r *Repository) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("list_orders", err, start)
	}()

	query, args := listOrdersQuery(filter)

	orders := make([]model.Order, 0)
	if err = r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	return orders, nil
}

func listOrdersQuery(filter model.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.WalletAddress != "" {
		add("user_wallet_address = $%d", filter.WalletAddress)
	}
	if !filter.From.IsZero() {
		add("created_at >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("created_at < $%d", filter.To)
	}

	var b strings.Builder
	b.WriteString("\nSELECT " + orderColumns + "\nFROM orders")
	if len(conds) > 0 {
		b.WriteString("\nWHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString("\nORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\nLIMIT $%d", len(args))
	}
	return b.String(), args
}
