package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidInput = errors.New("invalid input")
	ErrHandoff      = errors.New("order handoff failed")
)

type CartLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice domain.Money
}

// Cart is the part of a session cart that checkout reads and clears.
type Cart interface {
	Lines() []CartLine
	TotalPrice() domain.Money
	ClearCart()
}

type CartAccess interface {
	// WithCart runs fn against the session's cart. Changes made by fn are
	// kept even when fn returns an error.
	WithCart(ctx context.Context, sessionID string, fn func(Cart) error) error
}

// Channel delivers an order to the merchant. Delivery is one-way: a nil
// error means the order left this process.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, order domain.Order) (domain.Receipt, error)
}

// OrderLog keeps a record of orders that were handed off.
type OrderLog interface {
	Record(ctx context.Context, summary domain.Summary, receipt domain.Receipt) error
}

type Service struct {
	Cart    CartAccess
	Channel Channel
	// Orders is optional. A failed record does not fail the checkout.
	Orders OrderLog

	formatter *Formatter
	log       *zap.Logger
	now       func() time.Time
}

func NewService(cart CartAccess, channel Channel, formatter *Formatter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Cart:      cart,
		Channel:   channel,
		formatter: formatter,
		log:       log.Named("checkout"),
		now:       time.Now,
	}
}

func normalizeCustomer(c domain.Customer) (domain.Customer, error) {
	c = domain.Customer{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Address:   strings.TrimSpace(c.Address),
		Phone:     strings.TrimSpace(c.Phone),
	}
	if c.FirstName == "" || c.LastName == "" || c.Address == "" {
		return domain.Customer{}, fmt.Errorf("%w: first name, last name and address are required", ErrInvalidInput)
	}
	return c, nil
}

// Checkout hands the session's cart to the configured channel and empties the
// cart once the channel accepted it. A failed handoff leaves the cart as is.
// After a successful handoff the receipt is always returned, even when the
// emptied cart could not be saved.
func (s *Service) Checkout(ctx context.Context, sessionID string, customer domain.Customer) (domain.Receipt, error) {
	customer, err := normalizeCustomer(customer)
	if err != nil {
		return domain.Receipt{}, err
	}

	var (
		receipt   domain.Receipt
		placed    domain.Summary
		delivered bool
	)
	err = s.Cart.WithCart(ctx, sessionID, func(c Cart) error {
		summary, err := s.summarize(c)
		if err != nil {
			return err
		}
		summary.Reference = uuid.NewString()
		summary.Customer = customer
		summary.CreatedAt = s.now().UTC()

		order := domain.Order{Summary: summary, Text: s.formatter.Format(summary)}
		r, err := s.Channel.Deliver(ctx, order)
		if err != nil {
			return fmt.Errorf("%w via %s: %w", ErrHandoff, s.Channel.Name(), err)
		}

		delivered = true
		c.ClearCart()
		receipt = r
		placed = summary
		return nil
	})
	if err != nil && delivered {
		// the order already left this process
		s.log.Error("clear cart after handoff failed",
			zap.String("session_id", sessionID),
			zap.String("reference", receipt.Reference),
			zap.Error(err),
		)
		err = nil
	}
	if err != nil {
		if !errors.Is(err, ErrEmptyCart) {
			s.log.Warn("checkout failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return domain.Receipt{}, err
	}

	s.log.Info("order handed off",
		zap.String("reference", receipt.Reference),
		zap.String("channel", receipt.Channel),
	)
	if s.Orders != nil {
		if err := s.Orders.Record(ctx, placed, receipt); err != nil {
			s.log.Error("record order failed", zap.String("reference", receipt.Reference), zap.Error(err))
		}
	}
	return receipt, nil
}

// Quote prices the session's cart the way Checkout would, without a
// customer and without handing anything off.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Order, error) {
	var order domain.Order
	err := s.Cart.WithCart(ctx, sessionID, func(c Cart) error {
		summary, err := s.summarize(c)
		if err != nil {
			return err
		}
		order = domain.Order{Summary: summary, Text: s.formatter.Format(summary)}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) summarize(c Cart) (domain.Summary, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return domain.Summary{}, ErrEmptyCart
	}

	summary := domain.Summary{
		Lines: make([]domain.SummaryLine, 0, len(lines)),
		Total: c.TotalPrice(),
	}
	for _, ln := range lines {
		summary.Lines = append(summary.Lines, domain.SummaryLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			LineTotal: domain.Money{
				Currency: ln.UnitPrice.Currency,
				Amount:   ln.UnitPrice.Amount * ln.Quantity,
			},
		})
	}
	return summary, nil
}
