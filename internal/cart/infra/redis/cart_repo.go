package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

type lineRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
	UnitAmount   int64  `json:"unit_amount"`
	ImageURL     string `json:"image_url"`
	StockCeiling int    `json:"stock_ceiling"`
	Quantity     int    `json:"quantity"`
}

// CartRepo stores each session's lines as one JSON value. Every save
// refreshes the TTL, so idle carts expire on their own.
type CartRepo struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewCartRepo(rdb *goredis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := r.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get: %w", err)
	}

	var records []lineRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}

	lines := make([]domain.Line, 0, len(records))
	for _, rec := range records {
		lines = append(lines, domain.Line{
			ID:           rec.ID,
			Name:         rec.Name,
			UnitPrice:    domain.Money{Currency: rec.Currency, Amount: rec.UnitAmount},
			ImageURL:     rec.ImageURL,
			StockCeiling: rec.StockCeiling,
			Quantity:     rec.Quantity,
		})
	}
	return domain.Cart{Lines: lines}, nil
}

func (r *CartRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	records := make([]lineRecord, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		records = append(records, lineRecord{
			ID:           l.ID,
			Name:         l.Name,
			Currency:     l.UnitPrice.Currency,
			UnitAmount:   l.UnitPrice.Amount,
			ImageURL:     l.ImageURL,
			StockCeiling: l.StockCeiling,
			Quantity:     l.Quantity,
		})
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
