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

// PlaceOrder is an unvalidated purchase request.
type PlaceOrder struct {
	Buyer                model.Buyer
	ProductID            string
	TransactionSignature string
	Amount               decimal.Decimal
}

type OrderService struct {
	repo             OrderRepository
	verifier         PaymentVerifier
	rejectOutOfStock bool
	logger           *zap.Logger
}

func NewOrderService(repo OrderRepository, verifier PaymentVerifier, rejectOutOfStock bool, logger *zap.Logger) *OrderService {
	if verifier == nil {
		verifier = solana.NoopVerifier{}
	}
	return &OrderService{
		repo:             repo,
		verifier:         verifier,
		rejectOutOfStock: rejectOutOfStock,
		logger:           logger.Named("orders"),
	}
}

// Create validates a purchase, checks its payment and records it. A payment
// whose outcome cannot be determined yet is stored as pending.
func (s *OrderService) Create(ctx context.Context, req PlaceOrder) (model.Order, error) {
	create, err := validatePlaceOrder(req)
	if err != nil {
		return model.Order{}, err
	}
	create.RequireStock = s.rejectOutOfStock

	status, err := s.verifier.Verify(ctx, create.TransactionSignature)
	switch {
	case err != nil && ctx.Err() != nil:
		return model.Order{}, ctx.Err()
	case err != nil:
		s.logger.Warn("payment verification failed, accepting as pending",
			zap.String("signature", create.TransactionSignature), zap.Error(err))
		status = model.TransactionPending
	case status == model.TransactionFailed:
		return model.Order{}, model.Validationf("transaction %s failed on chain", create.TransactionSignature)
	}
	create.TransactionStatus = status

	order, err := s.repo.CreateOrder(ctx, create)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		zap.Stringer("id", order.ID),
		zap.String("wallet", order.UserWalletAddress),
		zap.String("product", order.ProductName),
		zap.String("transaction_status", string(order.TransactionStatus)),
	)
	return order, nil
}

func validatePlaceOrder(req PlaceOrder) (model.CreateOrder, error) {
	if err := solana.ValidateAddress(req.Buyer.WalletAddress); err != nil {
		return model.CreateOrder{}, err
	}
	if err := solana.ValidateAddress(req.Buyer.PublicKey); err != nil {
		return model.CreateOrder{}, model.Validationf("invalid public key %q", req.Buyer.PublicKey)
	}
	if err := solana.ValidateSignature(req.TransactionSignature); err != nil {
		return model.CreateOrder{}, err
	}
	if !req.Amount.IsPositive() {
		return model.CreateOrder{}, model.Validationf("amount must be positive")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return model.CreateOrder{}, model.Validationf("invalid product id %q", req.ProductID)
	}

	return model.CreateOrder{
		Buyer:                req.Buyer,
		ProductID:            productID,
		TransactionSignature: req.TransactionSignature,
		Amount:               req.Amount,
	}, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	return s.repo.ListOrders(ctx, model.OrderFilter{})
}

// ByWallet returns the orders of one wallet, newest first.
func (s *OrderService) ByWallet(ctx context.Context, wallet string) ([]model.Order, error) {
	if wallet == "" {
		return nil, model.Validationf("wallet address is required")
	}
	return s.repo.ListOrders(ctx, model.OrderFilter{WalletAddress: wallet})
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (model.Order, error) {
	return s.repo.OrderByID(ctx, id)
}

// UpdateStatus moves an order to a new fulfilment status.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, model.Validationf("invalid order status %q", status)
	}
	order, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}
	s.logger.Info("order status updated", zap.Stringer("id", id), zap.String("status", string(status)))
	return order, nil
}
