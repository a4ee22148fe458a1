package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rewardClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "rewards",
		Name:      "claims_total",
		Help:      "Count of reward claims.",
	}, []string{"status"})
	rewardClaimDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "rewards",
		Name:      "claim_duration_seconds",
		Help:      "Duration of reward claims including lock wait.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	rewardCoinsClaimedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "rewards",
		Name:      "coins_claimed_total",
		Help:      "Total coins credited by claims.",
	})
)

// Rewards tracks metrics for reward claims.
type Rewards struct{}

// NewRewards creates a Rewards metrics collector.
func NewRewards() *Rewards {
	return &Rewards{}
}

// ObserveClaim records a claim outcome and the coins it credited.
func (m Rewards) ObserveClaim(err error, amount int64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	rewardClaimsTotal.WithLabelValues(status).Inc()
	rewardClaimDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil && amount > 0 {
		rewardCoinsClaimedTotal.Add(float64(amount))
	}
}
