package solana

import (
	"context"
	"time"
)

// ObservedClient records metrics for every RPC call it forwards.
type ObservedClient struct {
	client     RPC
	rpcMetrics RPCMetrics
}

func NewObservedClient(client RPC, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) GetSignatureStatuses(ctx context.Context, signatures []string) (statuses []*SignatureStatus, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_signature_statuses", err, started)
	}()
	return r.client.GetSignatureStatuses(ctx, signatures)
}
