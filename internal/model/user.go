package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the wallet-keyed account record.
type User struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	WalletAddress  string          `db:"wallet_address" json:"walletAddress"`
	PublicKey      string          `db:"public_key" json:"publicKey"`
	Username       *string         `db:"username" json:"username"`
	Avatar         *string         `db:"avatar" json:"avatar"`
	Notifications  bool            `db:"notifications" json:"notifications"`
	Newsletter     bool            `db:"newsletter" json:"newsletter"`
	TotalPurchases int64           `db:"total_purchases" json:"totalPurchases"`
	TotalSpent     decimal.Decimal `db:"total_spent" json:"totalSpent"`
	FirstPurchase  *time.Time      `db:"first_purchase" json:"firstPurchase"`
	LastPurchase   *time.Time      `db:"last_purchase" json:"lastPurchase"`
	Coins          int64           `db:"coins" json:"coins"`
	LastClaimedAt  *time.Time      `db:"last_claimed_at" json:"lastClaimedAt"`
	IsActive       bool            `db:"is_active" json:"isActive"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}

// Profile holds optional display fields. Nil keeps the stored value.
type Profile struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

// Preferences holds notification settings.
type Preferences struct {
	Notifications bool `json:"notifications"`
	Newsletter    bool `json:"newsletter"`
}

// UpsertUser creates or refreshes a user keyed by wallet address.
type UpsertUser struct {
	WalletAddress string
	PublicKey     string
	Profile       Profile
}
