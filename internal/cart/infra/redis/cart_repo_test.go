package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	pkgredis "github.com/dwikikusuma/storefront/pkg/redis"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

func openTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	rdb, err := pkgredis.Open(context.Background(), pkgredis.Config{Addr: addr})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCartRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepo(openTestClient(t), time.Minute)
	sessionID := uuid.NewString()

	if _, err := repo.Get(ctx, sessionID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cart := domain.Cart{Lines: []domain.Line{
		{ID: "A", Name: "Serum", UnitPrice: domain.Money{Currency: "USD", Amount: 1250}, StockCeiling: 4, Quantity: 2},
		{ID: "B", Name: "Lipstick", UnitPrice: domain.Money{Currency: "USD", Amount: 899}, StockCeiling: 1, Quantity: 1},
	}}
	if err := repo.Save(ctx, sessionID, cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Lines) != 2 || got.Lines[0] != cart.Lines[0] || got.Lines[1] != cart.Lines[1] {
		t.Fatalf("got %+v", got)
	}

	if err := repo.Delete(ctx, sessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, sessionID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
