package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// UpsertUser creates a user or refreshes the public key and any profile fields provided.
func (r *Repository) UpsertUser(ctx context.Context, req model.UpsertUser) (model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_user", err, start)
	}()

	const query = `
INSERT INTO users (id, wallet_address, public_key, username, avatar, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (wallet_address) DO UPDATE
SET public_key = EXCLUDED.public_key,
    username   = COALESCE(EXCLUDED.username, users.username),
    avatar     = COALESCE(EXCLUDED.avatar, users.avatar),
    updated_at = EXCLUDED.updated_at
RETURNING ` + userColumns

	var user model.User
	if err = r.db.GetContext(ctx, &user, query,
		uuid.New(), req.WalletAddress, req.PublicKey, req.Profile.Username, req.Profile.Avatar, r.now(),
	); err != nil {
		return model.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}
