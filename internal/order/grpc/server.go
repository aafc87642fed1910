package grpc

import (
	"context"

	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	svc *app.Service
	log *zap.Logger
}

func NewServer(svc *app.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log.Named("order")}
}

func (s *Server) Register(r grpc.ServiceRegistrar) {
	grpcjson.Register(r, orderv1.ServiceName, s,
		grpcjson.Unary(orderv1.MethodListOrders, s.ListOrders),
	)
}

func (s *Server) ListOrders(ctx context.Context, req *orderv1.ListOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	orders, err := s.svc.ListOrders(ctx, req.Limit)
	if err != nil {
		s.log.Error("list orders failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]orderv1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toProto(o))
	}
	return &orderv1.ListOrdersResponse{Orders: out}, nil
}

func toProto(o domain.Order) orderv1.Order {
	items := make([]orderv1.OrderItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, orderv1.OrderItem{
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: it.LineTotalAmount,
		})
	}
	return orderv1.Order{
		ID:            o.ID,
		Channel:       o.Channel,
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		Address:       o.Address,
		Phone:         o.Phone,
		Currency:      o.Currency,
		TotalAmount:   o.TotalAmount,
		Items:         items,
		CreatedAtUnix: o.CreatedAt.Unix(),
	}
}
