// Package orderv1 holds the wire types and client of
// storefront.order.v1.OrderService.
package orderv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
)

const (
	ServiceName      = "storefront.order.v1.OrderService"
	MethodListOrders = "ListOrders"
)

type OrderItem struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	UnitAmount      int64  `json:"unit_amount"`
	Quantity        int64  `json:"quantity"`
	LineTotalAmount int64  `json:"line_total_amount"`
}

type Order struct {
	ID            string      `json:"id"`
	Channel       string      `json:"channel"`
	Status        string      `json:"status"`
	CustomerName  string      `json:"customer_name"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone,omitempty"`
	Currency      string      `json:"currency"`
	TotalAmount   int64       `json:"total_amount"`
	Items         []OrderItem `json:"items"`
	CreatedAtUnix int64       `json:"created_at_unix"`
}

type ListOrdersRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	out := new(ListOrdersResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodListOrders, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
