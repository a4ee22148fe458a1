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

// UpdateProfile sets the provided profile fields. Nil fields keep their stored value.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (model.User, error) {
	const query = `
UPDATE users
SET username = COALESCE($2, username), avatar = COALESCE($3, avatar), updated_at = $4
WHERE id = $1
RETURNING ` + userColumns

	return r.updateUser(ctx, "update_profile", id, query, profile.Username, profile.Avatar)
}

// UpdatePreferences replaces the notification settings.
func (r *Repository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (model.User, error) {
	const query = `
UPDATE users
SET notifications = $2, newsletter = $3, updated_at = $4
WHERE id = $1
RETURNING ` + userColumns

	return r.updateUser(ctx, "update_preferences", id, query, prefs.Notifications, prefs.Newsletter)
}

// SetUserActive deactivates or reactivates a user.
func (r *Repository) SetUserActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	const query = `
UPDATE users
SET is_active = $2, updated_at = $3
WHERE id = $1
RETURNING ` + userColumns

	return r.updateUser(ctx, "set_user_active", id, query, active)
}

// updateUser runs a single-row update whose trailing parameter is updated_at.
func (r *Repository) updateUser(ctx context.Context, op string, id uuid.UUID, query string, args ...any) (model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe(op, err, start)
	}()

	params := make([]any, 0, len(args)+2)
	params = append(params, id)
	params = append(params, args...)
	params = append(params, r.now())

	var user model.User
	if err = r.db.GetContext(ctx, &user, query, params...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("user %s", id)
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
