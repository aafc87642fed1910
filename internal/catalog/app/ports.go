package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	// List returns every product, newest first.
	List(ctx context.Context) ([]domain.Product, error)
}

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
