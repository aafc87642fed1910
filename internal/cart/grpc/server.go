package grpc

import (
	"context"
	"errors"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
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
	return &Server{svc: svc, log: log.Named("cart")}
}

func (s *Server) Register(r grpc.ServiceRegistrar) {
	grpcjson.Register(r, cartv1.ServiceName, s,
		grpcjson.Unary(cartv1.MethodCreateSession, s.CreateSession),
		grpcjson.Unary(cartv1.MethodGetCart, s.GetCart),
		grpcjson.Unary(cartv1.MethodAddItem, s.AddItem),
		grpcjson.Unary(cartv1.MethodUpdateQuantity, s.UpdateQuantity),
		grpcjson.Unary(cartv1.MethodRemoveItem, s.RemoveItem),
		grpcjson.Unary(cartv1.MethodClearCart, s.ClearCart),
	)
}

func (s *Server) CreateSession(ctx context.Context, _ *cartv1.CreateSessionRequest) (*cartv1.CreateSessionResponse, error) {
	return &cartv1.CreateSessionResponse{SessionID: s.svc.NewSession()}, nil
}

func (s *Server) GetCart(ctx context.Context, req *cartv1.GetCartRequest) (*cartv1.CartResponse, error) {
	cart, err := s.svc.GetCart(ctx, req.SessionID)
	return s.respond(req.SessionID, cart, err)
}

func (s *Server) AddItem(ctx context.Context, req *cartv1.AddItemRequest) (*cartv1.CartResponse, error) {
	cart, err := s.svc.AddProduct(ctx, req.SessionID, req.ProductID)
	return s.respond(req.SessionID, cart, err)
}

func (s *Server) UpdateQuantity(ctx context.Context, req *cartv1.UpdateQuantityRequest) (*cartv1.CartResponse, error) {
	cart, err := s.svc.UpdateQuantity(ctx, req.SessionID, req.ProductID, req.Quantity)
	return s.respond(req.SessionID, cart, err)
}

func (s *Server) RemoveItem(ctx context.Context, req *cartv1.RemoveItemRequest) (*cartv1.CartResponse, error) {
	cart, err := s.svc.RemoveItem(ctx, req.SessionID, req.ProductID)
	return s.respond(req.SessionID, cart, err)
}

func (s *Server) ClearCart(ctx context.Context, req *cartv1.ClearCartRequest) (*cartv1.CartResponse, error) {
	cart, err := s.svc.ClearCart(ctx, req.SessionID)
	return s.respond(req.SessionID, cart, err)
}

// respond turns domain.ErrAtStockLimit into a flag on a successful response.
func (s *Server) respond(sessionID string, cart domain.Cart, err error) (*cartv1.CartResponse, error) {
	atLimit := errors.Is(err, domain.ErrAtStockLimit)
	if err != nil && !atLimit {
		return nil, s.mapErr(err)
	}
	if id, err := app.NormalizeSession(sessionID); err == nil {
		sessionID = id
	}
	return &cartv1.CartResponse{
		Cart:         toProto(sessionID, cart),
		AtStockLimit: atLimit,
	}, nil
}

func toProto(sessionID string, cart domain.Cart) cartv1.Cart {
	lines := make([]cartv1.Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		total := l.Total()
		lines = append(lines, cartv1.Line{
			ProductID:    l.ID,
			Name:         l.Name,
			UnitPrice:    cartv1.Money{Currency: l.UnitPrice.Currency, Amount: l.UnitPrice.Amount},
			ImageURL:     l.ImageURL,
			StockCeiling: l.StockCeiling,
			Quantity:     l.Quantity,
			LineTotal:    cartv1.Money{Currency: total.Currency, Amount: total.Amount},
		})
	}

	price := cart.TotalPrice()
	return cartv1.Cart{
		SessionID:  sessionID,
		Lines:      lines,
		TotalItems: cart.TotalItems(),
		TotalPrice: cartv1.Money{Currency: price.Currency, Amount: price.Amount},
	}
}

func (s *Server) mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrOutOfStock):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.log.Error("cart call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
