// Package solana validates Solana keys and signatures and checks payment
// signatures against a JSON-RPC node.
package solana

import (
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

const (
	publicKeyLength = 32
	signatureLength = 64
)

// ValidateAddress checks that s is a base58 encoded 32-byte public key.
func ValidateAddress(s string) error {
	if s == "" {
		return model.Validationf("wallet address is required")
	}
	if n := len(base58.Decode(s)); n != publicKeyLength {
		return model.Validationf("invalid wallet address %q", s)
	}
	return nil
}

// ValidateSignature checks that s is a base58 encoded 64-byte transaction signature.
func ValidateSignature(s string) error {
	if s == "" {
		return model.Validationf("transaction signature is required")
	}
	if n := len(base58.Decode(s)); n != signatureLength {
		return model.Validationf("invalid transaction signature")
	}
	return nil
}
