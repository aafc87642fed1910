// Package checkoutv1 holds the wire types and client of
// storefront.checkout.v1.CheckoutService.
package checkoutv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
)

const (
	ServiceName    = "storefront.checkout.v1.CheckoutService"
	MethodQuote    = "Quote"
	MethodCheckout = "Checkout"
)

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type QuoteLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type QuoteRequest struct {
	SessionID string `json:"session_id"`
}

type QuoteResponse struct {
	Lines   []QuoteLine `json:"lines"`
	Total   Money       `json:"total"`
	Summary string      `json:"summary"`
}

type CheckoutRequest struct {
	SessionID string `json:"session_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
}

type CheckoutResponse struct {
	Channel   string `json:"channel"`
	Reference string `json:"reference"`
	URL       string `json:"url,omitempty"`
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	out := new(QuoteResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodQuote, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	out := new(CheckoutResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodCheckout, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
