package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/internal/solana"
)

type UserService struct {
	users  UserRepository
	orders OrderRepository
	logger *zap.Logger
}

func NewUserService(users UserRepository, orders OrderRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		orders: orders,
		logger: logger.Named("users"),
	}
}

// Upsert creates a user for a wallet or refreshes an existing one.
func (s *UserService) Upsert(ctx context.Context, req model.UpsertUser) (model.User, error) {
	if err := solana.ValidateAddress(req.WalletAddress); err != nil {
		return model.User{}, err
	}
	if err := solana.ValidateAddress(req.PublicKey); err != nil {
		return model.User{}, model.Validationf("invalid public key %q", req.PublicKey)
	}

	user, err := s.users.UpsertUser(ctx, req)
	if err != nil {
		return model.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}

func (s *UserService) ByWallet(ctx context.Context, wallet string) (model.User, error) {
	return s.users.UserByWallet(ctx, wallet)
}

func (s *UserService) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.users.UserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (model.User, error) {
	return s.users.UpdateProfile(ctx, id, profile)
}

func (s *UserService) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (model.User, error) {
	return s.users.UpdatePreferences(ctx, id, prefs)
}

func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.SetUserActive(ctx, id, false)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info("user deactivated", zap.Stringer("id", id))
	return user, nil
}

func (s *UserService) Reactivate(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.SetUserActive(ctx, id, true)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info("user reactivated", zap.Stringer("id", id))
	return user, nil
}

// Orders returns a user's orders, newest first.
func (s *UserService) Orders(ctx context.Context, id uuid.UUID) ([]model.Order, error) {
	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.orders.ListOrders(ctx, model.OrderFilter{WalletAddress: user.WalletAddress})
}

// RecordPurchase adds one purchase of amount to the wallet's statistics.
func (s *UserService) RecordPurchase(ctx context.Context, wallet string, amount decimal.Decimal) (model.User, error) {
	if !amount.IsPositive() {
		return model.User{}, model.Validationf("amount must be positive")
	}
	return s.users.RecordPurchase(ctx, wallet, amount)
}
