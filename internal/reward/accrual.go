// Package reward computes coin accrual for purchased animals.
package reward

import (
	"fmt"
	"math"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/pkg/safe"
)

const millisecondsPerHour = 3_600_000

// Epoch is the baseline for wallets that never claimed.
var Epoch = time.Unix(0, 0).UTC()

// Accrued returns the unfloored reward earned by accruals from
// max(created, lastClaimed) up to now. Terms that would be negative, and
// accruals without a positive finite rate, contribute nothing.
func Accrued(accruals []model.Accrual, lastClaimed, now time.Time) float64 {
	var total float64
	for _, a := range accruals {
		if !(a.RewardRate > 0) || math.IsInf(a.RewardRate, 0) {
			continue
		}
		start := a.CreatedAt
		if lastClaimed.After(start) {
			start = lastClaimed
		}
		elapsed := now.Sub(start).Milliseconds()
		if elapsed <= 0 {
			continue
		}
		total += a.RewardRate * (float64(elapsed) / millisecondsPerHour)
	}
	return total
}

// Claim converts everything accrued since the last claim into coins. The floor
// is applied once to the sum. The baseline never moves backwards, so a clock
// behind the stored claim time leaves it in place.
func Claim(balance model.RewardBalance, accruals []model.Accrual, now time.Time) (model.RewardClaim, error) {
	lastClaimed := Epoch
	if balance.LastClaimedAt != nil {
		lastClaimed = *balance.LastClaimedAt
	}

	accrued := Accrued(accruals, lastClaimed, now)
	amount, err := safe.FloorInt64(accrued)
	if err != nil {
		return model.RewardClaim{}, fmt.Errorf("%w: accrued reward: %v", model.ErrValidation, err)
	}
	newBalance, err := safe.AddInt64(balance.Coins, amount)
	if err != nil {
		return model.RewardClaim{}, fmt.Errorf("%w: coin balance: %v", model.ErrValidation, err)
	}

	claimedAt := now
	if now.Before(lastClaimed) {
		claimedAt = lastClaimed
	}

	return model.RewardClaim{
		UserID:          balance.UserID,
		WalletAddress:   balance.WalletAddress,
		Amount:          amount,
		PreviousClaimAt: balance.LastClaimedAt,
		ClaimedAt:       claimedAt,
		OrderCount:      len(accruals),
		BalanceAfter:    newBalance,
	}, nil
}
