package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// CartRepo keeps snapshots in process memory. Carts are lost on restart.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string][]domain.Line
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string][]domain.Line)}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.carts[sessionID]
	if !ok {
		return domain.Cart{}, app.ErrNotFound
	}
	return domain.Cart{Lines: slices.Clone(lines)}, nil
}

func (r *CartRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[sessionID] = slices.Clone(cart.Lines)
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}
