package model

import (
	"time"

	"github.com/google/uuid"
)

// RewardBalance is the locked balance snapshot a claim starts from.
type RewardBalance struct {
	UserID        uuid.UUID  `db:"id"`
	WalletAddress string     `db:"wallet_address"`
	Coins         int64      `db:"coins"`
	LastClaimedAt *time.Time `db:"last_claimed_at"`
}

// Accrual is the part of an order that earns rewards.
type Accrual struct {
	OrderID    uuid.UUID `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	RewardRate float64   `db:"reward_rate"`
}

// RewardClaim is an append-only record of one claim.
type RewardClaim struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UserID          uuid.UUID  `db:"user_id" json:"userId"`
	WalletAddress   string     `db:"wallet_address" json:"walletAddress"`
	Amount          int64      `db:"amount" json:"claimedAmount"`
	PreviousClaimAt *time.Time `db:"previous_claimed_at" json:"previousClaimedAt"`
	ClaimedAt       time.Time  `db:"claimed_at" json:"claimedAt"`
	OrderCount      int        `db:"order_count" json:"orderCount"`
	BalanceAfter    int64      `db:"balance_after" json:"newCoinBalance"`
}

// ClaimFunc turns a locked balance and its accruals into a claim.
type ClaimFunc func(balance RewardBalance, accruals []Accrual) (RewardClaim, error)
