package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	// ListOrders returns at most limit orders, newest first.
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
}
