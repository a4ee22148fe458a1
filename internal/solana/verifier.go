package solana

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// Verifier maps the on-chain state of a payment signature to a transaction status.
type Verifier struct {
	rpc        RPC
	commitment Commitment
	metrics    VerificationMetrics
}

// NewVerifier constructs a Verifier that treats commitment as confirmation.
func NewVerifier(rpc RPC, commitment Commitment, metrics VerificationMetrics) (*Verifier, error) {
	if commitment == "" {
		commitment = CommitmentConfirmed
	}
	if !commitment.Valid() {
		return nil, fmt.Errorf("unknown commitment %q", commitment)
	}
	return &Verifier{rpc: rpc, commitment: commitment, metrics: metrics}, nil
}

// Verify returns confirmed, failed or pending for a signature. Pending covers both
// signatures the node has not seen yet and ones below the required commitment.
// A returned error means the outcome is unknown.
func (v *Verifier) Verify(ctx context.Context, signature string) (model.TransactionStatus, error) {
	statuses, err := v.rpc.GetSignatureStatuses(ctx, []string{signature})
	if err != nil {
		v.metrics.ObserveVerification("unknown")
		return model.TransactionPending, fmt.Errorf("get signature status: %w", err)
	}

	status := v.classify(statuses[0])
	v.metrics.ObserveVerification(string(status))
	return status, nil
}

func (v *Verifier) classify(s *SignatureStatus) model.TransactionStatus {
	switch {
	case s == nil:
		return model.TransactionPending
	case s.Err != nil:
		return model.TransactionFailed
	case s.ConfirmationStatus == "" && s.Confirmations == nil:
		// rooted by the cluster
		return model.TransactionConfirmed
	case s.ConfirmationStatus.Reaches(v.commitment):
		return model.TransactionConfirmed
	}
	return model.TransactionPending
}

// NoopVerifier accepts every payment as confirmed. It is used when no RPC node
// is configured.
type NoopVerifier struct{}

func (NoopVerifier) Verify(context.Context, string) (model.TransactionStatus, error) {
	return model.TransactionConfirmed, nil
}
