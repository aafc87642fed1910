package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/postgres/migrations"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := postgres.Migrate(ctx, db, "cart", migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCartRepoSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepo(openTestDB(t))
	session := uuid.NewString()

	if _, err := repo.Get(ctx, session); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cart := domain.Cart{Lines: []domain.Line{
		{ID: "b", Name: "Gloss", UnitPrice: domain.Money{Currency: "USD", Amount: 500}, StockCeiling: 3, Quantity: 2},
		{ID: "a", Name: "Lipstick", UnitPrice: domain.Money{Currency: "USD", Amount: 1000}, StockCeiling: 1, Quantity: 1},
	}}
	if err := repo.Save(ctx, session, cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, session)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Lines) != 2 || got.Lines[0].ID != "b" || got.Lines[1].ID != "a" {
		t.Fatalf("line order not kept: %+v", got.Lines)
	}
	if got.TotalPrice().Amount != 2000 {
		t.Fatalf("unexpected total: %+v", got.TotalPrice())
	}

	cart.Lines = cart.Lines[1:]
	if err := repo.Save(ctx, session, cart); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _ = repo.Get(ctx, session)
	if len(got.Lines) != 1 || got.Lines[0].ID != "a" {
		t.Fatalf("save should replace lines: %+v", got.Lines)
	}

	if err := repo.Delete(ctx, session); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, session); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
