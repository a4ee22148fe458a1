package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

const (
	lockBalanceQuery = `
SELECT id, wallet_address, coins, last_claimed_at
FROM users
WHERE wallet_address = $1
FOR UPDATE`

	accrualsQuery = `
SELECT id, created_at, reward_rate
FROM orders
WHERE user_wallet_address = $1 AND transaction_status = $2
ORDER BY created_at ASC`

	creditBalanceQuery = `
UPDATE users
SET coins = coins + $2, last_claimed_at = $3, updated_at = $4
WHERE id = $1
RETURNING coins`

	insertClaimQuery = `
INSERT INTO reward_claims (id, user_id, wallet_address, amount, previous_claimed_at, claimed_at,
                           order_count, balance_after)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// ClaimRewards locks the wallet's user row, hands its balance and confirmed accruals
// to claim, then credits the result and appends it to the claim ledger.
// Nothing is written when claim fails.
func (r *Repository) ClaimRewards(ctx context.Context, wallet string, claim model.ClaimFunc) (model.RewardClaim, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("claim_rewards", err, start)
	}()

	var result model.RewardClaim
	err = r.inTx(ctx, func(tx *sqlx.Tx) error {
		var balance model.RewardBalance
		if err := tx.GetContext(ctx, &balance, lockBalanceQuery, wallet); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.NotFoundf("user with wallet %s", wallet)
			}
			return fmt.Errorf("lock balance: %w", err)
		}

		accruals := make([]model.Accrual, 0)
		if err := tx.SelectContext(ctx, &accruals, accrualsQuery, wallet, model.TransactionConfirmed); err != nil {
			return fmt.Errorf("select accruals: %w", err)
		}

		c, err := claim(balance, accruals)
		if err != nil {
			return err
		}
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}

		if err := tx.GetContext(ctx, &c.BalanceAfter, creditBalanceQuery,
			balance.UserID, c.Amount, c.ClaimedAt, r.now(),
		); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertClaimQuery,
			c.ID, c.UserID, c.WalletAddress, c.Amount, c.PreviousClaimAt, c.ClaimedAt,
			c.OrderCount, c.BalanceAfter,
		); err != nil {
			return fmt.Errorf("insert reward claim: %w", err)
		}

		result = c
		return nil
	})
	if err != nil {
		return model.RewardClaim{}, err
	}
	return result, nil
}
