package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/google/uuid"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
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

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order reference: %w", err)
	}

	err = r.execTX(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, channel, status, customer_name, address, phone, currency, total_amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			orderID, order.Channel, order.Status, order.CustomerName, order.Address, order.Phone, order.Currency, order.TotalAmount, order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i, item := range order.OrderItems {
			expected := item.UnitAmount * item.Quantity
			if item.LineTotalAmount != expected {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, position, product_id, name, unit_amount, quantity, line_total_amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				orderID, i, item.ProductID, item.Name, item.UnitAmount, item.Quantity, item.LineTotalAmount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *OrderRepo) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.channel, o.status, o.customer_name, o.address, o.phone, o.currency, o.total_amount, o.created_at,
		       i.product_id, i.name, i.unit_amount, i.quantity, i.line_total_amount
		FROM (SELECT * FROM orders ORDER BY created_at DESC, id LIMIT $1) o
		JOIN order_items i ON i.order_id = o.id
		ORDER BY o.created_at DESC, o.id, i.position`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var (
			o    domain.Order
			id   uuid.UUID
			item domain.OrderItem
		)
		err := rows.Scan(&id, &o.Channel, &o.Status, &o.CustomerName, &o.Address, &o.Phone, &o.Currency, &o.TotalAmount, &o.CreatedAt,
			&item.ProductID, &item.Name, &item.UnitAmount, &item.Quantity, &item.LineTotalAmount)
		if err != nil {
			return nil, err
		}
		o.ID = id.String()

		if n := len(out); n > 0 && out[n-1].ID == o.ID {
			out[n-1].OrderItems = append(out[n-1].OrderItems, item)
			continue
		}
		o.OrderItems = []domain.OrderItem{item}
		out = append(out, o)
	}
	return out, rows.Err()
}
