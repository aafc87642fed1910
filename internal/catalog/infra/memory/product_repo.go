package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

// SeedCategories mirrors the rows inserted by the catalog's seed migration.
var SeedCategories = []domain.Category{
	{ID: "insumos-de-pestanas", Name: "Insumos De Pestañas", Slug: "insumos-de-pestanas"},
	{ID: "insumos-de-unas", Name: "Insumos De Uñas", Slug: "insumos-de-unas"},
	{ID: "maquillaje", Name: "Maquillaje", Slug: "maquillaje"},
	{ID: "productos-varios", Name: "Productos Varios", Slug: "productos-varios"},
	{ID: "skincare", Name: "Skincare", Slug: "skincare"},
}

// ProductRepo keeps products and categories in process memory.
type ProductRepo struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories []domain.Category
	now        func() time.Time
}

func NewProductRepo(categories []domain.Category, products ...domain.Product) *ProductRepo {
	r := &ProductRepo{
		products:   make(map[string]domain.Product, len(products)),
		categories: slices.Clone(categories),
		now:        time.Now,
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	slices.SortFunc(r.categories, func(a, b domain.Category) int { return cmp.Compare(a.Name, b.Name) })
	return r
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products[p.ID] = p
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.products[p.ID]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.now().UTC()
	r.products[p.ID] = p
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return app.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// List orders by creation time, newest first, then by id.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *ProductRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.categories), nil
}
