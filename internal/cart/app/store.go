package app

import (
	"errors"
	"slices"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// Store owns one session's cart. It is not safe for concurrent use; callers
// that share a Store across goroutines go through Service, which serializes
// access per session.
type Store struct {
	cart      domain.Cart
	listeners map[int]func(domain.Cart)
	nextID    int
}

func NewStore(initial domain.Cart) *Store {
	return &Store{
		cart:      domain.Cart{Lines: slices.Clone(initial.Lines)},
		listeners: make(map[int]func(domain.Cart)),
	}
}

// Subscribe registers fn to be called with the new cart after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(domain.Cart)) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) apply(next domain.Cart) {
	if slices.Equal(s.cart.Lines, next.Lines) {
		return
	}
	s.cart = next
	for _, fn := range s.listeners {
		fn(s.Cart())
	}
}

// AddItem returns domain.ErrOutOfStock without touching the cart, or
// domain.ErrAtStockLimit when the increment was clamped.
func (s *Store) AddItem(p domain.Product) error {
	next, err := s.cart.AddItem(p)
	if errors.Is(err, domain.ErrOutOfStock) {
		return err
	}
	s.apply(next)
	return err
}

func (s *Store) UpdateQuantity(id string, quantity int) {
	s.apply(s.cart.UpdateQuantity(id, quantity))
}

func (s *Store) RemoveItem(id string) {
	s.apply(s.cart.RemoveItem(id))
}

func (s *Store) ClearCart() {
	s.apply(s.cart.Clear())
}

// Cart returns a copy that later mutations will not affect.
func (s *Store) Cart() domain.Cart {
	return domain.Cart{Lines: s.Lines()}
}

func (s *Store) Lines() []domain.Line {
	return slices.Clone(s.cart.Lines)
}

func (s *Store) TotalItems() int {
	return s.cart.TotalItems()
}

func (s *Store) TotalPrice() domain.Money {
	return s.cart.TotalPrice()
}
