package grpc

import (
	"context"
	"errors"

	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
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
	return &Server{svc: svc, log: log.Named("checkout")}
}

func (s *Server) Register(r grpc.ServiceRegistrar) {
	grpcjson.Register(r, checkoutv1.ServiceName, s,
		grpcjson.Unary(checkoutv1.MethodQuote, s.Quote),
		grpcjson.Unary(checkoutv1.MethodCheckout, s.Checkout),
	)
}

func (s *Server) Quote(ctx context.Context, req *checkoutv1.QuoteRequest) (*checkoutv1.QuoteResponse, error) {
	order, err := s.svc.Quote(ctx, req.SessionID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return toProto(order), nil
}

func (s *Server) Checkout(ctx context.Context, req *checkoutv1.CheckoutRequest) (*checkoutv1.CheckoutResponse, error) {
	receipt, err := s.svc.Checkout(ctx, req.SessionID, domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &checkoutv1.CheckoutResponse{
		Channel:   receipt.Channel,
		Reference: receipt.Reference,
		URL:       receipt.URL,
	}, nil
}

func toProto(o domain.Order) *checkoutv1.QuoteResponse {
	lines := make([]checkoutv1.QuoteLine, 0, len(o.Summary.Lines))
	for _, ln := range o.Summary.Lines {
		lines = append(lines, checkoutv1.QuoteLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: checkoutv1.Money(ln.UnitPrice),
			LineTotal: checkoutv1.Money(ln.LineTotal),
		})
	}
	return &checkoutv1.QuoteResponse{
		Lines:   lines,
		Total:   checkoutv1.Money(o.Summary.Total),
		Summary: o.Text,
	}
}

func (s *Server) mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, app.ErrHandoff):
		s.log.Warn("order handoff failed", zap.Error(err))
		return status.Error(codes.Unavailable, app.ErrHandoff.Error())
	}
	s.log.Error("checkout call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
