package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

const productColumns = `id, name, description, price_amount, currency, COALESCE(category_id, ''), image_url, stock, created_at, updated_at`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p  domain.Product
		id uuid.UUID
	)
	err := row.Scan(&id, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency, &p.CategoryID, &p.ImageURL, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()
	return p, nil
}

func nullableCategory(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func parseID(id string) (uuid.UUID, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, app.ErrInvalidInput
	}
	return prodID, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price_amount, currency, category_id, image_url, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+productColumns,
		uuid.New(), p.Name, p.Description, p.Price.Amount, p.Price.Currency, nullableCategory(p.CategoryID), p.ImageURL, p.Stock, now,
	)
	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, prodID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	prodID, err := parseID(p.ID)
	if err != nil {
		return domain.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_amount = $4, currency = $5, category_id = $6, image_url = $7, stock = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		prodID, p.Name, p.Description, p.Price.Amount, p.Price.Currency, nullableCategory(p.CategoryID), p.ImageURL, p.Stock,
	)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	prodID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, prodID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
