package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	UncategorizedLabel = "Uncategorized"
	LowStockThreshold  = 6

	maxNameLen        = 200
	maxDescriptionLen = 1000
	maxImageURLLen    = 500
)

// Card is a product as shown in a catalog listing.
type Card struct {
	domain.Product
	CategoryName string
	LowStock     bool
	SoldOut      bool
}

type BrowseResult struct {
	Cards        []Card
	Categories   []domain.Category
	PageIndex    int
	PageCount    int
	TotalMatches int
}

type Service struct {
	products   ProductRepo
	categories CategoryRepo
	currency   string
}

func NewService(products ProductRepo, categories CategoryRepo, currency string) *Service {
	if strings.TrimSpace(currency) == "" {
		currency = "USD"
	}
	return &Service{
		products:   products,
		categories: categories,
		currency:   currency,
	}
}

// Browse loads the catalog and categories, then filters and paginates the
// catalog with spec.
func (s *Service) Browse(ctx context.Context, spec domain.FilterSpec) (BrowseResult, error) {
	var (
		products   []domain.Product
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return BrowseResult{}, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[domain.CategoryKey(c.ID)] = c.Name
	}

	res := domain.Query(products, spec)
	cards := make([]Card, 0, len(res.Page))
	for _, p := range res.Page {
		cards = append(cards, toCard(p, names))
	}

	return BrowseResult{
		Cards:        cards,
		Categories:   categories,
		PageIndex:    res.PageIndex,
		PageCount:    res.PageCount,
		TotalMatches: res.TotalMatches,
	}, nil
}

func toCard(p domain.Product, categoryNames map[string]string) Card {
	name, ok := categoryNames[domain.CategoryKey(p.CategoryID)]
	if !ok || name == "" {
		name = UncategorizedLabel
	}
	return Card{
		Product:      p,
		CategoryName: name,
		LowStock:     p.Stock > 0 && p.Stock < LowStockThreshold,
		SoldOut:      p.Stock == 0,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

type ProductInput struct {
	Name        string
	Description string
	Amount      int64
	CategoryID  string
	ImageURL    string
	Stock       int
}

func (s *Service) validate(in ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.CategoryID)
	image := strings.TrimSpace(in.ImageURL)

	switch {
	case name == "" || utf8.RuneCountInString(name) > maxNameLen:
		return domain.Product{}, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxNameLen)
	case utf8.RuneCountInString(desc) > maxDescriptionLen:
		return domain.Product{}, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLen)
	case in.Amount <= 0:
		return domain.Product{}, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	case category == "":
		return domain.Product{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	case in.Stock < 0:
		return domain.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	case !validImageURL(image):
		return domain.Product{}, fmt.Errorf("%w: image url must be an absolute http(s) url up to %d characters", ErrInvalidInput, maxImageURLLen)
	}

	return domain.Product{
		Name:        name,
		Description: desc,
		Price:       domain.Money{Currency: s.currency, Amount: in.Amount},
		CategoryID:  category,
		ImageURL:    image,
		Stock:       in.Stock,
	}, nil
}

func validImageURL(raw string) bool {
	if raw == "" || len(raw) > maxImageURLLen {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	p, err := s.validate(in)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.products.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	p, err := s.validate(in)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = strings.TrimSpace(id)
	return s.products.Update(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.products.Get(ctx, strings.TrimSpace(id))
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.products.Delete(ctx, strings.TrimSpace(id))
}
