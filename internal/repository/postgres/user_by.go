package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// UserByWallet returns the user owning a wallet address.
func (r *Repository) UserByWallet(ctx context.Context, wallet string) (model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("user_by_wallet", err, start)
	}()

	const query = `
SELECT ` + userColumns + `
FROM users
WHERE wallet_address = $1`

	var user model.User
	if err = r.db.GetContext(ctx, &user, query, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("user with wallet %s", wallet)
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("select user by wallet: %w", err)
	}
	return user, nil
}

// UserByID returns a user by primary key.
func (r *Repository) UserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("user_by_id", err, start)
	}()

	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	var user model.User
	if err = r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("user %s", id)
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return user, nil
}
