package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus describes on-chain confirmation of an order payment.
type TransactionStatus string

var (
	// TransactionPending marks a payment whose outcome is not known yet.
	TransactionPending TransactionStatus = "pending"
	// TransactionConfirmed marks a payment confirmed on chain.
	TransactionConfirmed TransactionStatus = "confirmed"
	// TransactionFailed marks a payment that failed or never landed.
	TransactionFailed TransactionStatus = "failed"
)

// OrderStatus describes fulfilment of an order.
type OrderStatus string

var (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderFailed    OrderStatus = "failed"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled, OrderFailed:
		return true
	}
	return false
}

// Order is an append-only purchase record. Product fields are a snapshot taken
// at purchase time and never follow later catalog edits.
type Order struct {
	ID                   uuid.UUID         `db:"id" json:"id"`
	UserID               uuid.UUID         `db:"user_id" json:"userId"`
	UserWalletAddress    string            `db:"user_wallet_address" json:"userWalletAddress"`
	UserPublicKey        string            `db:"user_public_key" json:"userPublicKey"`
	ProductID            uuid.NullUUID     `db:"product_id" json:"productId"`
	ProductName          string            `db:"product_name" json:"productName"`
	ProductPrice         decimal.Decimal   `db:"product_price" json:"productPrice"`
	ProductEmoji         string            `db:"product_emoji" json:"productEmoji"`
	RewardRate           float64           `db:"reward_rate" json:"rewardRate"`
	TransactionSignature string            `db:"transaction_signature" json:"transactionSignature"`
	TransactionAmount    decimal.Decimal   `db:"transaction_amount" json:"transactionAmount"`
	TransactionStatus    TransactionStatus `db:"transaction_status" json:"transactionStatus"`
	OrderStatus          OrderStatus       `db:"order_status" json:"orderStatus"`
	CreatedAt            time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time         `db:"updated_at" json:"updatedAt"`
}

// Buyer identifies the wallet paying for an order.
type Buyer struct {
	WalletAddress string `json:"walletAddress"`
	PublicKey     string `json:"publicKey"`
}

// CreateOrder is a validated purchase request.
type CreateOrder struct {
	Buyer                Buyer
	ProductID            uuid.UUID
	TransactionSignature string
	Amount               decimal.Decimal
	TransactionStatus    TransactionStatus
	// RequireStock rejects the purchase when the product has no stock left.
	RequireStock bool
}

// OrderFilter narrows order scans. Zero values disable a filter.
type OrderFilter struct {
	WalletAddress string
	From          time.Time
	To            time.Time
	Limit         int
}

// OrderStatusFor returns the fulfilment status implied by a payment outcome.
func OrderStatusFor(s TransactionStatus) OrderStatus {
	switch s {
	case TransactionConfirmed:
		return OrderCompleted
	case TransactionFailed:
		return OrderFailed
	}
	return OrderPending
}

// PaymentStatusUpdate moves an order to a final payment outcome.
type PaymentStatusUpdate struct {
	OrderID           uuid.UUID
	TransactionStatus TransactionStatus
	OrderStatus       OrderStatus
}
