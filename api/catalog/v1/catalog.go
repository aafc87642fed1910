// Package catalogv1 holds the wire types and client of
// storefront.catalog.v1.CatalogService.
package catalogv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.catalog.v1.CatalogService"

const (
	MethodBrowse         = "Browse"
	MethodListCategories = "ListCategories"
	MethodGetProduct     = "GetProduct"
	MethodCreateProduct  = "CreateProduct"
	MethodUpdateProduct  = "UpdateProduct"
	MethodDeleteProduct  = "DeleteProduct"
)

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        Money  `json:"price"`
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Stock        int    `json:"stock"`
	LowStock     bool   `json:"low_stock"`
	SoldOut      bool   `json:"sold_out"`

	CreatedAtUnix int64 `json:"created_at_unix"`
	UpdatedAtUnix int64 `json:"updated_at_unix"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BrowseRequest carries the catalog filters. Nil price bounds are open.
type BrowseRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	MinPrice *int64 `json:"min_price,omitempty"`
	MaxPrice *int64 `json:"max_price,omitempty"`
	Page     int    `json:"page,omitempty"`
}

type BrowseResponse struct {
	Products     []Product  `json:"products"`
	Categories   []Category `json:"categories"`
	Page         int        `json:"page"`
	PageCount    int        `json:"page_count"`
	TotalMatches int        `json:"total_matches"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	CategoryID  string `json:"category_id"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
}

type CreateProductRequest struct {
	Product ProductInput `json:"product"`
}

type UpdateProductRequest struct {
	ID      string       `json:"id"`
	Product ProductInput `json:"product"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type DeleteProductResponse struct{}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Browse(ctx context.Context, req *BrowseRequest) (*BrowseResponse, error) {
	out := new(BrowseResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodBrowse, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context, req *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	out := new(ListCategoriesResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodListCategories, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodGetProduct, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodCreateProduct, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*ProductResponse, error) {
	out := new(ProductResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodUpdateProduct, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	out := new(DeleteProductResponse)
	if err := grpcjson.Invoke(ctx, c.cc, ServiceName, MethodDeleteProduct, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
