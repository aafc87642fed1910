package app

import (
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

func lipstick(stock int) domain.Product {
	return domain.Product{
		ID:        "lipstick",
		Name:      "Matte Lipstick",
		UnitPrice: domain.Money{Currency: "USD", Amount: 1000},
		Stock:     stock,
	}
}

func TestStoreNotifiesOnChange(t *testing.T) {
	st := NewStore(domain.Cart{})

	var seen []int
	cancel := st.Subscribe(func(c domain.Cart) { seen = append(seen, c.TotalItems()) })

	if err := st.AddItem(lipstick(2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.AddItem(lipstick(2)); err != nil {
		t.Fatalf("add: %v", err)
	}

	t.Run("clamped add does not notify", func(t *testing.T) {
		if err := st.AddItem(lipstick(2)); !errors.Is(err, domain.ErrAtStockLimit) {
			t.Fatalf("expected ErrAtStockLimit, got %v", err)
		}
		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %v", seen)
		}
	})

	t.Run("unknown id does not notify", func(t *testing.T) {
		st.RemoveItem("missing")
		st.UpdateQuantity("missing", 3)
		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %v", seen)
		}
	})

	t.Run("cancel stops notifications", func(t *testing.T) {
		cancel()
		st.ClearCart()
		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %v", seen)
		}
		if st.TotalItems() != 0 {
			t.Fatalf("expected empty cart, got %d items", st.TotalItems())
		}
	})
}

func TestStoreOutOfStockLeavesCart(t *testing.T) {
	st := NewStore(domain.Cart{})
	if err := st.AddItem(lipstick(0)); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if len(st.Lines()) != 0 {
		t.Fatalf("expected no lines, got %+v", st.Lines())
	}
}

func TestStoreSnapshotsAreIsolated(t *testing.T) {
	st := NewStore(domain.Cart{})
	_ = st.AddItem(lipstick(5))

	lines := st.Lines()
	lines[0].Quantity = 99

	if got := st.Lines()[0].Quantity; got != 1 {
		t.Fatalf("store mutated through snapshot: %d", got)
	}
	if got := st.TotalPrice().Amount; got != 1000 {
		t.Fatalf("expected total 1000, got %d", got)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := NewStore(domain.Cart{})
	b := NewStore(domain.Cart{})
	_ = a.AddItem(lipstick(5))

	if b.TotalItems() != 0 {
		t.Fatalf("expected second store to stay empty, got %d", b.TotalItems())
	}
}
