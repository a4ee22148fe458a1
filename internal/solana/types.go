package solana

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPC is the subset of the Solana JSON-RPC API used for payment checks.
	RPC interface {
		GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error)
	}

	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	VerificationMetrics interface {
		ObserveVerification(outcome string)
	}
)

// Commitment is a Solana confirmation level.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

var commitmentRank = map[Commitment]int{
	CommitmentProcessed: 1,
	CommitmentConfirmed: 2,
	CommitmentFinalized: 3,
}

// Valid reports whether c is a known commitment level.
func (c Commitment) Valid() bool {
	_, ok := commitmentRank[c]
	return ok
}

// Reaches reports whether c is at least as final as target.
func (c Commitment) Reaches(target Commitment) bool {
	return commitmentRank[c] > 0 && commitmentRank[c] >= commitmentRank[target]
}

// SignatureStatus is one entry of a getSignatureStatuses response.
type SignatureStatus struct {
	Slot               uint64     `json:"slot"`
	Confirmations      *uint64    `json:"confirmations"`
	Err                any        `json:"err"`
	ConfirmationStatus Commitment `json:"confirmationStatus"`
}
