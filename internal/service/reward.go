package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/internal/reward"
)

const defaultClaimHistoryLimit = 50

type RewardService struct {
	repo    RewardRepository
	locks   KeyLocker
	metrics RewardMetrics
	now     func() time.Time
	logger  *zap.Logger
}

func NewRewardService(repo RewardRepository, locks KeyLocker, metrics RewardMetrics, logger *zap.Logger) *RewardService {
	return &RewardService{
		repo:    repo,
		locks:   locks,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.Named("rewards"),
	}
}

// Claim credits everything a wallet accrued since its last claim. Claims for the
// same wallet are serialized here and by the row lock taken in storage, so
// concurrent requests never count an interval twice.
func (s *RewardService) Claim(ctx context.Context, wallet string) (claim model.RewardClaim, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveClaim(err, claim.Amount, started)
	}()

	if wallet == "" {
		return model.RewardClaim{}, model.Validationf("wallet address is required")
	}

	unlock, err := s.locks.Lock(ctx, wallet)
	if err != nil {
		return model.RewardClaim{}, fmt.Errorf("acquire claim lock: %w", err)
	}
	defer unlock()

	claim, err = s.repo.ClaimRewards(ctx, wallet, func(balance model.RewardBalance, accruals []model.Accrual) (model.RewardClaim, error) {
		return reward.Claim(balance, accruals, s.now())
	})
	if err != nil {
		return model.RewardClaim{}, err
	}

	s.logger.Info("rewards claimed",
		zap.String("wallet", wallet),
		zap.Int64("amount", claim.Amount),
		zap.Int64("balance", claim.BalanceAfter),
		zap.Int("orders", claim.OrderCount),
	)
	return claim, nil
}

// History returns the wallet's claim ledger, newest first.
func (s *RewardService) History(ctx context.Context, wallet string, limit int) ([]model.RewardClaim, error) {
	if limit <= 0 {
		limit = defaultClaimHistoryLimit
	}
	return s.repo.ListClaims(ctx, wallet, limit)
}
