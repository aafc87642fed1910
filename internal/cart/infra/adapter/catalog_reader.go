package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		return domain.Product{}, cartapp.ErrNotFound
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return domain.Product{}, cartapp.ErrInvalidInput
	case err != nil:
		return domain.Product{}, err
	}

	return domain.Product{
		ID:   p.ID,
		Name: p.Name,
		UnitPrice: domain.Money{
			Currency: p.Price.Currency,
			Amount:   p.Price.Amount,
		},
		ImageURL: p.ImageURL,
		Stock:    p.Stock,
	}, nil
}
