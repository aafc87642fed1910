package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service keeps one Store per cart session. Calls for the same session run
// one at a time; different sessions do not block each other.
type Service struct {
	repo    CartRepo
	catalog CatalogReader

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(repo CartRepo, catalog CatalogReader) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		locks:   make(map[string]*sessionLock),
	}
}

func (s *Service) NewSession() string {
	return uuid.NewString()
}

func (s *Service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// NormalizeSession returns the canonical form of a session id: a lower-case
// UUID without surrounding space.
func NormalizeSession(sessionID string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return "", fmt.Errorf("%w: session id: %v", ErrInvalidInput, err)
	}
	return id.String(), nil
}

// Do loads the session's cart into a Store, runs fn and saves the result if
// fn changed it. An unknown session starts with an empty cart.
func (s *Service) Do(ctx context.Context, sessionID string, fn func(*Store) error) (domain.Cart, error) {
	sessionID, err := NormalizeSession(sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	unlock := s.lock(sessionID)
	defer unlock()

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	store := NewStore(cart)
	changed := false
	cancel := store.Subscribe(func(domain.Cart) { changed = true })
	defer cancel()

	fnErr := fn(store)

	if changed {
		next := store.Cart()
		if next.IsEmpty() {
			err = s.repo.Delete(ctx, sessionID)
		} else {
			err = s.repo.Save(ctx, sessionID, next)
		}
		if err != nil {
			return domain.Cart{}, fmt.Errorf("save cart: %w", err)
		}
	}

	return store.Cart(), fnErr
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.Do(ctx, sessionID, func(*Store) error { return nil })
}

// AddItem may return the updated cart together with domain.ErrAtStockLimit.
func (s *Service) AddItem(ctx context.Context, sessionID string, p domain.Product) (domain.Cart, error) {
	if strings.TrimSpace(p.ID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.Do(ctx, sessionID, func(st *Store) error { return st.AddItem(p) })
}

// AddProduct reads the product's live price and stock from the catalog and
// adds one unit of it.
func (s *Service) AddProduct(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}
	return s.AddItem(ctx, sessionID, p)
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	return s.Do(ctx, sessionID, func(st *Store) error {
		st.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	return s.Do(ctx, sessionID, func(st *Store) error {
		st.RemoveItem(productID)
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.Do(ctx, sessionID, func(st *Store) error {
		st.ClearCart()
		return nil
	})
}
