package grpc

import (
	"context"
	"errors"

	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	svc      *app.Service
	pageSize int
	log      *zap.Logger
}

func NewServer(svc *app.Service, pageSize int, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, pageSize: pageSize, log: log.Named("catalog")}
}

func (s *Server) Register(r grpc.ServiceRegistrar) {
	grpcjson.Register(r, catalogv1.ServiceName, s,
		grpcjson.Unary(catalogv1.MethodBrowse, s.Browse),
		grpcjson.Unary(catalogv1.MethodListCategories, s.ListCategories),
		grpcjson.Unary(catalogv1.MethodGetProduct, s.GetProduct),
		grpcjson.Unary(catalogv1.MethodCreateProduct, s.CreateProduct),
		grpcjson.Unary(catalogv1.MethodUpdateProduct, s.UpdateProduct),
		grpcjson.Unary(catalogv1.MethodDeleteProduct, s.DeleteProduct),
	)
}

// filterSpec turns a request into a filter. Every filter is applied on top of
// a fresh spec, so the requested page is set last.
func (s *Server) filterSpec(req *catalogv1.BrowseRequest) domain.FilterSpec {
	spec := domain.NewFilterSpec(s.pageSize).
		WithSearchTerm(req.Query)
	if req.Category != "" {
		spec = spec.WithCategory(req.Category)
	}
	if req.MinPrice != nil {
		spec = spec.WithMinPrice(*req.MinPrice)
	}
	if req.MaxPrice != nil {
		spec = spec.WithMaxPrice(*req.MaxPrice)
	}
	return spec.WithPage(req.Page)
}

func (s *Server) Browse(ctx context.Context, req *catalogv1.BrowseRequest) (*catalogv1.BrowseResponse, error) {
	res, err := s.svc.Browse(ctx, s.filterSpec(req))
	if err != nil {
		return nil, s.mapErr(err)
	}

	products := make([]catalogv1.Product, 0, len(res.Cards))
	for _, c := range res.Cards {
		products = append(products, toCardProto(c))
	}
	return &catalogv1.BrowseResponse{
		Products:     products,
		Categories:   toCategoriesProto(res.Categories),
		Page:         res.PageIndex,
		PageCount:    res.PageCount,
		TotalMatches: res.TotalMatches,
	}, nil
}

func (s *Server) ListCategories(ctx context.Context, _ *catalogv1.ListCategoriesRequest) (*catalogv1.ListCategoriesResponse, error) {
	categories, err := s.svc.ListCategories(ctx)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &catalogv1.ListCategoriesResponse{Categories: toCategoriesProto(categories)}, nil
}

func (s *Server) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.ProductResponse, error) {
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &catalogv1.ProductResponse{Product: toProto(p)}, nil
}

func (s *Server) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.ProductResponse, error) {
	p, err := s.svc.CreateProduct(ctx, toInput(req.Product))
	if err != nil {
		return nil, s.mapErr(err)
	}
	s.log.Info("product created", zap.String("product_id", p.ID))
	return &catalogv1.ProductResponse{Product: toProto(p)}, nil
}

func (s *Server) UpdateProduct(ctx context.Context, req *catalogv1.UpdateProductRequest) (*catalogv1.ProductResponse, error) {
	p, err := s.svc.UpdateProduct(ctx, req.ID, toInput(req.Product))
	if err != nil {
		return nil, s.mapErr(err)
	}
	return &catalogv1.ProductResponse{Product: toProto(p)}, nil
}

func (s *Server) DeleteProduct(ctx context.Context, req *catalogv1.DeleteProductRequest) (*catalogv1.DeleteProductResponse, error) {
	if err := s.svc.DeleteProduct(ctx, req.ID); err != nil {
		return nil, s.mapErr(err)
	}
	s.log.Info("product deleted", zap.String("product_id", req.ID))
	return &catalogv1.DeleteProductResponse{}, nil
}

func toInput(in catalogv1.ProductInput) app.ProductInput {
	return app.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	}
}

func toProto(p domain.Product) catalogv1.Product {
	return catalogv1.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price: catalogv1.Money{
			Currency: p.Price.Currency,
			Amount:   p.Price.Amount,
		},
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		Stock:         p.Stock,
		LowStock:      p.Stock > 0 && p.Stock < app.LowStockThreshold,
		SoldOut:       p.Stock == 0,
		CreatedAtUnix: p.CreatedAt.Unix(),
		UpdatedAtUnix: p.UpdatedAt.Unix(),
	}
}

func toCardProto(c app.Card) catalogv1.Product {
	out := toProto(c.Product)
	out.CategoryName = c.CategoryName
	out.LowStock = c.LowStock
	out.SoldOut = c.SoldOut
	return out
}

func toCategoriesProto(categories []domain.Category) []catalogv1.Category {
	out := make([]catalogv1.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, catalogv1.Category{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return out
}

func (s *Server) mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	s.log.Error("catalog call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
