package whatsapp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"unicode"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

const baseURL = "https://wa.me/"

// Channel hands an order off as a click-to-chat link. Nothing leaves the
// server; the customer's browser opens the link and sends the message.
type Channel struct {
	phone string
}

// NewChannel keeps only the digits of phone, the form wa.me expects.
func NewChannel(phone string) (*Channel, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return nil, errors.New("whatsapp: phone number is required")
	}
	return &Channel{phone: digits}, nil
}

func (c *Channel) Name() string { return "whatsapp" }

func (c *Channel) Deliver(ctx context.Context, order domain.Order) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{
		Channel:   c.Name(),
		Reference: order.Summary.Reference,
		URL:       c.Link(order.Text),
	}, nil
}

func (c *Channel) Link(text string) string {
	return baseURL + c.phone + "?text=" + escape(text)
}

// escape percent-encodes text for a query value, spaces included.
func escape(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
