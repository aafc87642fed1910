package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

// OrderRepo keeps orders in process memory, in insertion order.
type OrderRepo struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{}
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	order.OrderItems = slices.Clone(order.OrderItems)
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *OrderRepo) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.orders))
	out := make([]domain.Order, 0, n)
	for i := len(r.orders) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}
