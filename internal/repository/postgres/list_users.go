package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// ListUsers returns all users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("list_users", err, start)
	}()

	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC`

	users := make([]model.User, 0)
	if err = r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// TopBuyers returns users ranked by purchase count, then by total spent.
func (r *Repository) TopBuyers(ctx context.Context, limit int) ([]model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("top_buyers", err, start)
	}()

	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY total_purchases DESC, total_spent DESC, created_at ASC
LIMIT $1`

	users := make([]model.User, 0, limit)
	if err = r.db.SelectContext(ctx, &users, query, limit); err != nil {
		return nil, fmt.Errorf("select top buyers: %w", err)
	}
	return users, nil
}
