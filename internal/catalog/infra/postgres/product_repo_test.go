package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/postgres/migrations"
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

	if _, err := postgres.Migrate(ctx, db, "catalog", migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProductRepoCRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProductRepo(db)

	categoryID := "cat-" + uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT INTO categories (id, name, slug) VALUES ($1, $2, $1)`, categoryID, "Skincare"); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	created, err := repo.Create(ctx, domain.Product{
		Name:       "Serum",
		Price:      domain.Money{Currency: "USD", Amount: 2500},
		CategoryID: categoryID,
		ImageURL:   "https://cdn.example.com/serum.png",
		Stock:      4,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, created.ID) })

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Serum" || got.CategoryID != categoryID || got.Stock != 4 {
		t.Fatalf("got %+v", got)
	}

	got.Stock = 0
	updated, err := repo.Update(ctx, got)
	if err != nil || updated.Stock != 0 {
		t.Fatalf("update: %+v %v", updated, err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, p := range list {
		found = found || p.ID == created.ID
	}
	if !found {
		t.Fatalf("created product missing from list")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "not-a-uuid"); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
