package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/google/uuid"
)

// CartRepo keeps cart snapshots in the cart_items table, one row per line.
type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, currency, unit_amount, image_url, stock_ceiling, quantity
		FROM cart_items
		WHERE session_id = $1
		ORDER BY position`, sessionUUID)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ID, &l.Name, &l.UnitPrice.Currency, &l.UnitPrice.Amount, &l.ImageURL, &l.StockCeiling, &l.Quantity); err != nil {
			return domain.Cart{}, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return domain.Cart{}, err
	}
	if len(lines) == 0 {
		return domain.Cart{}, app.ErrNotFound
	}

	return domain.Cart{Lines: lines}, nil
}

// Save replaces the session's rows with the given lines in one transaction.
func (r *CartRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		return err
	}

	return r.execTX(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionUUID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		for i, l := range cart.Lines {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (session_id, product_id, position, name, currency, unit_amount, image_url, stock_ceiling, quantity)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				sessionUUID, l.ID, i, l.Name, l.UnitPrice.Currency, l.UnitPrice.Amount, l.ImageURL, l.StockCeiling, l.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert line %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	sessionUUID, err := uuid.Parse(sessionID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionUUID)
	return err
}
