// Package cartv1 holds the wire types and client of
// storefront.cart.v1.CartService.
package cartv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.cart.v1.CartService"

const (
	MethodCreateSession  = "CreateSession"
	MethodGetCart        = "GetCart"
	MethodAddItem        = "AddItem"
	MethodUpdateQuantity = "UpdateQuantity"
	MethodRemoveItem     = "RemoveItem"
	MethodClearCart      = "ClearCart"
)

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Line struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	UnitPrice    Money  `json:"unit_price"`
	ImageURL     string `json:"image_url,omitempty"`
	StockCeiling int    `json:"stock_ceiling"`
	Quantity     int    `json:"quantity"`
	LineTotal    Money  `json:"line_total"`
}

type Cart struct {
	SessionID  string `json:"session_id"`
	Lines      []Line `json:"lines"`
	TotalItems int    `json:"total_items"`
	TotalPrice Money  `json:"total_price"`
}

// CartResponse is returned by every cart call. AtStockLimit reports that an
// add was capped by the product's stock.
type CartResponse struct {
	Cart         Cart `json:"cart"`
	AtStockLimit bool `json:"at_stock_limit"`
}

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type GetCartRequest struct {
	SessionID string `json:"session_id"`
}

type AddItemRequest struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RemoveItemRequest struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
}

type ClearCartRequest struct {
	SessionID string `json:"session_id"`
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	out := new(CreateSessionResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodCreateSession, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCart(ctx context.Context, req *GetCartRequest) (*CartResponse, error) {
	return c.call(ctx, MethodGetCart, req)
}

func (c *Client) AddItem(ctx context.Context, req *AddItemRequest) (*CartResponse, error) {
	return c.call(ctx, MethodAddItem, req)
}

func (c *Client) UpdateQuantity(ctx context.Context, req *UpdateQuantityRequest) (*CartResponse, error) {
	return c.call(ctx, MethodUpdateQuantity, req)
}

func (c *Client) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartResponse, error) {
	return c.call(ctx, MethodRemoveItem, req)
}

func (c *Client) ClearCart(ctx context.Context, req *ClearCartRequest) (*CartResponse, error) {
	return c.call(ctx, MethodClearCart, req)
}

func (c *Client) call(ctx context.Context, method string, req any) (*CartResponse, error) {
	out := new(CartResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
