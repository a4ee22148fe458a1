package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "solana_rpc_client",
		Name:      "operations_total",
		Help:      "Count of Solana RPC operations.",
	}, []string{"operation", "cluster", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "solana_rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Solana RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "cluster", "status"})
	paymentVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "solana_rpc_client",
		Name:      "payment_verifications_total",
		Help:      "Count of payment verifications by outcome.",
	}, []string{"cluster", "outcome"})
)

// RPCClient tracks metrics for calls to a Solana JSON-RPC node.
type RPCClient struct {
	cluster string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(cluster string) *RPCClient {
	if cluster == "" {
		cluster = "unknown"
	}
	return &RPCClient{cluster: cluster}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	rpcRequestsTotal.WithLabelValues(operation, m.cluster, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.cluster, status).Observe(time.Since(started).Seconds())
}

// ObserveVerification counts a payment verification outcome.
func (m RPCClient) ObserveVerification(outcome string) {
	paymentVerificationsTotal.WithLabelValues(m.cluster, outcome).Inc()
}
