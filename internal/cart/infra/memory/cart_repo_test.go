package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

func TestCartRepoIsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepo()

	cart := domain.Cart{Lines: []domain.Line{{ID: "a", Name: "Lipstick", StockCeiling: 2, Quantity: 1}}}
	if err := repo.Save(ctx, "s1", cart); err != nil {
		t.Fatalf("save: %v", err)
	}
	cart.Lines[0].Quantity = 2

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Lines[0].Quantity != 1 {
		t.Fatalf("stored snapshot changed with the caller's slice")
	}

	if _, err := repo.Get(ctx, "s2"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCartRepoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewCartRepo().Save(ctx, "s1", domain.Cart{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
