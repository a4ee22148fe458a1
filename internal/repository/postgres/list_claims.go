package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// ListClaims returns the claim ledger of a wallet, newest first.
func (r *Repository) ListClaims(ctx context.Context, wallet string, limit int) ([]model.RewardClaim, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("list_claims", err, start)
	}()

	const query = `
SELECT ` + claimColumns + `
FROM reward_claims
WHERE wallet_address = $1
ORDER BY claimed_at DESC
LIMIT $2`

	claims := make([]model.RewardClaim, 0)
	if err = r.db.SelectContext(ctx, &claims, query, wallet, limit); err != nil {
		return nil, fmt.Errorf("select reward claims: %w", err)
	}
	return claims, nil
}
