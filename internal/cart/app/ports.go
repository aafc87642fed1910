package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// CartRepo persists cart snapshots between requests. Get returns
// ErrNotFound for a session that has never been saved or has expired.
type CartRepo interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// CatalogReader resolves a product's current price and stock.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
