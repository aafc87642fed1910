package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func ptr[T any](v T) *T { return &v }

func TestFilterSpec(t *testing.T) {
	s := NewServer(nil, 5, nil)

	spec := s.filterSpec(&catalogv1.BrowseRequest{
		Query:    "balm",
		Category: "lips",
		MinPrice: ptr(int64(100)),
		MaxPrice: ptr(int64(0)),
		Page:     3,
	})
	if spec.SearchTerm != "balm" || spec.Category != "lips" || spec.MinPrice != 100 || spec.MaxPrice == nil || *spec.MaxPrice != 0 {
		t.Fatalf("filters not applied: %+v", spec)
	}
	if spec.PageIndex != 3 || spec.PageSize != 5 {
		t.Fatalf("unexpected paging: %+v", spec)
	}

	spec = s.filterSpec(&catalogv1.BrowseRequest{})
	if spec.Category != domain.CategoryAll || spec.MaxPrice != nil || spec.PageIndex != 1 {
		t.Fatalf("unexpected defaults: %+v", spec)
	}
}

func newClient(t *testing.T, repo *memory.ProductRepo) *catalogv1.Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	NewServer(app.NewService(repo, repo, "USD"), 2, nil).Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return catalogv1.NewClient(conn)
}

func TestCatalogServerBrowse(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	usd := func(a int64) domain.Money { return domain.Money{Currency: "USD", Amount: a} }
	repo := memory.NewProductRepo(
		[]domain.Category{{ID: "lips", Name: "Lips", Slug: "lips"}},
		domain.Product{ID: "1", Name: "Red Lipstick", Price: usd(1000), CategoryID: "lips", Stock: 3, CreatedAt: base},
		domain.Product{ID: "2", Name: "Pink Lipstick", Price: usd(1200), CategoryID: "lips", Stock: 0, CreatedAt: base.Add(time.Hour)},
		domain.Product{ID: "3", Name: "Night Cream", Price: usd(2500), Stock: 10, CreatedAt: base.Add(2 * time.Hour)},
	)
	client := newClient(t, repo)
	ctx := context.Background()

	resp, err := client.Browse(ctx, &catalogv1.BrowseRequest{Query: "LIPSTICK"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if resp.TotalMatches != 2 || resp.PageCount != 1 || len(resp.Products) != 2 {
		t.Fatalf("unexpected result: %+v", resp)
	}
	if resp.Products[0].ID != "2" || !resp.Products[0].SoldOut || !resp.Products[1].LowStock {
		t.Fatalf("unexpected cards: %+v", resp.Products)
	}
	if resp.Products[0].CategoryName != "Lips" {
		t.Fatalf("unexpected category name %q", resp.Products[0].CategoryName)
	}

	resp, err = client.Browse(ctx, &catalogv1.BrowseRequest{})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if resp.Products[0].ID != "3" || resp.Products[0].CategoryName != app.UncategorizedLabel {
		t.Fatalf("expected newest uncategorized product first, got %+v", resp.Products[0])
	}

	resp, err = client.Browse(ctx, &catalogv1.BrowseRequest{Page: 9})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if resp.Page != 2 || len(resp.Products) != 1 || resp.Products[0].ID != "1" {
		t.Fatalf("expected clamped last page with the oldest product, got %+v", resp)
	}
}

func TestCatalogServerAdmin(t *testing.T) {
	client := newClient(t, memory.NewProductRepo(nil))
	ctx := context.Background()

	_, err := client.CreateProduct(ctx, &catalogv1.CreateProductRequest{Product: catalogv1.ProductInput{Name: ""}})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	created, err := client.CreateProduct(ctx, &catalogv1.CreateProductRequest{Product: catalogv1.ProductInput{
		Name:       "Serum",
		Amount:     1999,
		CategoryID: "skin",
		ImageURL:   "https://cdn.example.com/serum.png",
		Stock:      4,
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Product.Price.Amount != 1999 || created.Product.Price.Currency != "USD" || !created.Product.LowStock {
		t.Fatalf("unexpected product: %+v", created.Product)
	}

	got, err := client.GetProduct(ctx, &catalogv1.GetProductRequest{ID: created.Product.ID})
	if err != nil || got.Product.Name != "Serum" {
		t.Fatalf("get: %+v %v", got, err)
	}

	if _, err := client.DeleteProduct(ctx, &catalogv1.DeleteProductRequest{ID: created.Product.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = client.GetProduct(ctx, &catalogv1.GetProductRequest{ID: created.Product.ID})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
