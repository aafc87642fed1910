package adapter

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderServiceLog struct {
	svc *orderapp.Service
}

func NewOrderServiceLog(svc *orderapp.Service) *OrderServiceLog {
	return &OrderServiceLog{svc: svc}
}

func (l *OrderServiceLog) Record(ctx context.Context, summary domain.Summary, receipt domain.Receipt) error {
	items := make([]orderdomain.OrderItemRequest, 0, len(summary.Lines))
	for _, ln := range summary.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			ProductID:  ln.ProductID,
			Name:       ln.Name,
			UnitAmount: ln.UnitPrice.Amount,
			Quantity:   ln.Quantity,
		})
	}

	_, err := l.svc.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		Reference:    summary.Reference,
		Channel:      receipt.Channel,
		CustomerName: summary.Customer.FullName(),
		Address:      summary.Customer.Address,
		Phone:        summary.Customer.Phone,
		Currency:     summary.Total.Currency,
		Items:        items,
		CreatedAt:    summary.CreatedAt,
	})
	return err
}
