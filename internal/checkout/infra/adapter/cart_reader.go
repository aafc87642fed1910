package adapter

import (
	"context"
	"errors"
	"fmt"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

// CartServiceAccess lets checkout read and clear a session cart through the
// cart service, so the session lock is held for the whole handoff.
type CartServiceAccess struct {
	svc *cartapp.Service
}

func NewCartServiceAccess(svc *cartapp.Service) *CartServiceAccess {
	return &CartServiceAccess{svc: svc}
}

func (a *CartServiceAccess) WithCart(ctx context.Context, sessionID string, fn func(checkoutapp.Cart) error) error {
	_, err := a.svc.Do(ctx, sessionID, func(st *cartapp.Store) error {
		return fn(storeView{st})
	})
	if errors.Is(err, cartapp.ErrInvalidInput) {
		return fmt.Errorf("%w: %w", checkoutapp.ErrInvalidInput, err)
	}
	return err
}

type storeView struct {
	st *cartapp.Store
}

func (v storeView) Lines() []checkoutapp.CartLine {
	lines := v.st.Lines()
	out := make([]checkoutapp.CartLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, checkoutapp.CartLine{
			ProductID: l.ID,
			Name:      l.Name,
			Quantity:  int64(l.Quantity),
			UnitPrice: domain.Money{Currency: l.UnitPrice.Currency, Amount: l.UnitPrice.Amount},
		})
	}
	return out
}

func (v storeView) TotalPrice() domain.Money {
	m := v.st.TotalPrice()
	return domain.Money{Currency: m.Currency, Amount: m.Amount}
}

func (v storeView) ClearCart() {
	v.st.ClearCart()
}
