package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	OrderStatusHandedOff = "HANDED_OFF"

	DefaultListLimit = 20
	MaxListLimit     = 100
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if strings.TrimSpace(req.Reference) == "" {
		return domain.Order{}, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: items must not be empty", ErrInvalidInput)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	var totalAmount int64 = 0

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %d", ErrInvalidInput, i, item.UnitAmount)
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: item.UnitAmount * item.Quantity,
		})

		totalAmount += item.UnitAmount * item.Quantity
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	order := domain.Order{
		ID:           req.Reference,
		Channel:      req.Channel,
		Status:       OrderStatusHandedOff,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Phone:        req.Phone,
		Currency:     req.Currency,
		TotalAmount:  totalAmount,
		OrderItems:   orderItems,
		CreatedAt:    createdAt.UTC(),
	}

	return s.repo.CreateOrderTx(ctx, order)
}

// ListOrders clamps limit into [1, MaxListLimit]; zero means DefaultListLimit.
func (s *Service) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListOrders(ctx, limit)
}
