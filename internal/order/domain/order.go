package domain

import "time"

// Order is the record of a checkout that was handed off to a channel. Its ID
// is the checkout reference.
type Order struct {
	ID           string
	Channel      string
	Status       string
	CustomerName string
	Address      string
	Phone        string
	Currency     string
	TotalAmount  int64
	OrderItems   []OrderItem
	CreatedAt    time.Time
}

type OrderItem struct {
	ProductID       string
	Name            string
	UnitAmount      int64
	Quantity        int64
	LineTotalAmount int64
}

type CreateOrderRequest struct {
	Reference    string
	Channel      string
	CustomerName string
	Address      string
	Phone        string
	Currency     string
	Items        []OrderItemRequest
	CreatedAt    time.Time
}

type OrderItemRequest struct {
	ProductID  string
	Name       string
	UnitAmount int64
	Quantity   int64
}
