package solana

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// maxSignaturesPerCall is the node-side limit for getSignatureStatuses.
const maxSignaturesPerCall = 256

// ClientConfig configures a JSON-RPC client.
type ClientConfig struct {
	URL         string
	RPS         int
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
}

// Client wraps the solana-go RPC client with an outbound rate limit and
// bounded retries. Transport failures and 5xx/429 responses are retried with
// exponential backoff; JSON-RPC errors are not.
type Client struct {
	rpc         *rpc.Client
	rl          ratelimit.Limiter
	maxAttempts int
	backoff     time.Duration
	timeout     time.Duration
}

// NewClient constructs a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("solana rpc url is required")
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 10
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		rpc:         rpc.New(cfg.URL),
		rl:          ratelimit.New(cfg.RPS),
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		timeout:     cfg.Timeout,
	}, nil
}

// GetSignatureStatuses returns one status per signature, nil where the node
// does not know the signature. History search is always enabled.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error) {
	if len(signatures) > maxSignaturesPerCall {
		return nil, fmt.Errorf("too many signatures: %d > %d", len(signatures), maxSignaturesPerCall)
	}
	sigs := make([]solanago.Signature, 0, len(signatures))
	for _, s := range signatures {
		sig, err := solanago.SignatureFromBase58(s)
		if err != nil {
			return nil, model.Validationf("invalid transaction signature %q", s)
		}
		sigs = append(sigs, sig)
	}

	var result *rpc.GetSignatureStatusesResult
	err := c.retry(ctx, func(attemptCtx context.Context) error {
		var err error
		result, err = c.rpc.GetSignatureStatuses(attemptCtx, true, sigs...)
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: getSignatureStatuses: %v", model.ErrUpstream, err)
	}
	if result == nil || len(result.Value) != len(signatures) {
		got := 0
		if result != nil {
			got = len(result.Value)
		}
		return nil, fmt.Errorf("%w: expected %d statuses, got %d", model.ErrUpstream, len(signatures), got)
	}

	statuses := make([]*SignatureStatus, len(result.Value))
	for i, v := range result.Value {
		if v == nil {
			continue
		}
		statuses[i] = &SignatureStatus{
			Slot:               v.Slot,
			Confirmations:      v.Confirmations,
			Err:                v.Err,
			ConfirmationStatus: Commitment(v.ConfirmationStatus),
		}
	}
	return statuses, nil
}

// retry runs call until it succeeds, fails permanently or runs out of attempts.
// Every attempt waits for the rate limiter and gets its own timeout.
func (c *Client) retry(ctx context.Context, call func(context.Context) error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.backoff
	policy.MaxElapsedTime = 0

	op := func() error {
		c.rl.Take()

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		err := call(attemptCtx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.maxAttempts-1)),
		ctx,
	))
}

func retryable(err error) bool {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return false
	}
	var httpErr *jsonrpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code == http.StatusTooManyRequests || httpErr.Code >= http.StatusInternalServerError
	}
	return true
}
