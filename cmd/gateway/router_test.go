package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmemory "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cgrpc "github.com/dwikikusuma/storefront/internal/catalog/grpc"
	catalogmemory "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/storefront/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/whatsapp"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	ordergrpc "github.com/dwikikusuma/storefront/internal/order/grpc"
	ordermemory "github.com/dwikikusuma/storefront/internal/order/infra/memory"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := catalogmemory.NewProductRepo(nil)
	catalogSvc := catalogapp.NewService(products, products, "USD")
	cartSvc := cartapp.NewService(cartmemory.NewCartRepo(), cartadapter.NewCatalogServiceReader(catalogSvc))
	channel, err := whatsapp.NewChannel("543884656451")
	if err != nil {
		t.Fatalf("channel: %v", err)
	}
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceAccess(cartSvc),
		channel,
		checkoutapp.NewFormatter(language.AmericanEnglish),
		zap.NewNop(),
	)
	orderSvc := orderapp.NewService(ordermemory.NewOrderRepo())
	checkoutSvc.Orders = checkoutadapter.NewOrderServiceLog(orderSvc)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	cgrpc.NewServer(catalogSvc, 12, nil).Register(srv)
	cartgrpc.NewServer(cartSvc, nil).Register(srv)
	checkoutgrpc.NewServer(checkoutSvc, nil).Register(srv)
	ordergrpc.NewServer(orderSvc, nil).Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return newRouter(conn, zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w.Code
}

func createProduct(t *testing.T, r http.Handler, name string, amount int64, stock int) string {
	t.Helper()
	var resp catalogv1.ProductResponse
	code := do(t, r, http.MethodPost, "/v1/products", catalogv1.ProductInput{
		Name:       name,
		Amount:     amount,
		CategoryID: "lips",
		ImageURL:   "https://cdn.example.com/p.png",
		Stock:      stock,
	}, &resp)
	if code != http.StatusCreated {
		t.Fatalf("create %s: status %d", name, code)
	}
	return resp.Product.ID
}

func TestGatewayShoppingFlow(t *testing.T) {
	r := newTestRouter(t)

	lipstick := createProduct(t, r, "Lipstick", 1000, 2)
	soldOut := createProduct(t, r, "Gloss", 500, 0)

	var browse catalogv1.BrowseResponse
	if code := do(t, r, http.MethodGet, "/v1/products?q=lip&max_price=1500", nil, &browse); code != http.StatusOK {
		t.Fatalf("browse: status %d", code)
	}
	if browse.TotalMatches != 1 || browse.Products[0].ID != lipstick || !browse.Products[0].LowStock {
		t.Fatalf("unexpected browse result: %+v", browse)
	}

	var session cartv1.CreateSessionResponse
	if code := do(t, r, http.MethodPost, "/v1/carts", nil, &session); code != http.StatusCreated {
		t.Fatalf("create session: status %d", code)
	}
	items := "/v1/carts/" + session.SessionID + "/items"

	var cart cartv1.CartResponse
	for i := 0; i < 3; i++ {
		if code := do(t, r, http.MethodPost, items, addItemBody{ProductID: lipstick}, &cart); code != http.StatusOK {
			t.Fatalf("add %d: status %d", i, code)
		}
	}
	if !cart.AtStockLimit || cart.Cart.TotalItems != 2 || cart.Cart.TotalPrice.Amount != 2000 {
		t.Fatalf("expected capped cart, got %+v", cart)
	}

	var apiErr errorEnvelope
	if code := do(t, r, http.MethodPost, items, addItemBody{ProductID: soldOut}, &apiErr); code != http.StatusConflict {
		t.Fatalf("sold out add: status %d", code)
	}
	if apiErr.Error.Code != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error body: %+v", apiErr)
	}

	var quote checkoutv1.QuoteResponse
	if code := do(t, r, http.MethodGet, "/v1/carts/"+session.SessionID+"/quote", nil, &quote); code != http.StatusOK {
		t.Fatalf("quote: status %d", code)
	}
	if quote.Total.Amount != 2000 || !strings.Contains(quote.Summary, "Lipstick x2 - $20.00") {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	var receipt checkoutv1.CheckoutResponse
	code := do(t, r, http.MethodPost, "/v1/carts/"+session.SessionID+"/checkout", checkoutBody{
		FirstName: "Ana",
		LastName:  "Diaz",
		Address:   "Calle 1",
	}, &receipt)
	if code != http.StatusOK {
		t.Fatalf("checkout: status %d", code)
	}
	if receipt.Channel != "whatsapp" || !strings.HasPrefix(receipt.URL, "https://wa.me/543884656451?text=") {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	cart = cartv1.CartResponse{}
	if code := do(t, r, http.MethodGet, "/v1/carts/"+session.SessionID, nil, &cart); code != http.StatusOK {
		t.Fatalf("get cart: status %d", code)
	}
	if cart.Cart.TotalItems != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", cart.Cart)
	}

	var orders orderv1.ListOrdersResponse
	if code := do(t, r, http.MethodGet, "/v1/orders?limit=5", nil, &orders); code != http.StatusOK {
		t.Fatalf("list orders: status %d", code)
	}
	if len(orders.Orders) != 1 || orders.Orders[0].ID != receipt.Reference || orders.Orders[0].TotalAmount != 2000 {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	apiErr = errorEnvelope{}
	code = do(t, r, http.MethodPost, "/v1/carts/"+session.SessionID+"/checkout", checkoutBody{
		FirstName: "Ana", LastName: "Diaz", Address: "Calle 1",
	}, &apiErr)
	if code != http.StatusConflict || apiErr.Error.Code != "FAILED_PRECONDITION" {
		t.Fatalf("empty cart checkout: status %d body %+v", code, apiErr)
	}
}

func TestGatewayBadRequests(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "bad min price", method: http.MethodGet, path: "/v1/products?min_price=ten", want: http.StatusBadRequest},
		{name: "bad page", method: http.MethodGet, path: "/v1/products?page=two", want: http.StatusBadRequest},
		{name: "malformed session", method: http.MethodGet, path: "/v1/carts/not-a-session", want: http.StatusBadRequest},
		{name: "missing product id", method: http.MethodPost, path: "/v1/carts/00000000-0000-0000-0000-000000000001/items", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "unknown product", method: http.MethodPost, path: "/v1/carts/00000000-0000-0000-0000-000000000001/items", body: addItemBody{ProductID: "nope"}, want: http.StatusNotFound},
		{name: "missing quantity", method: http.MethodPut, path: "/v1/carts/00000000-0000-0000-0000-000000000001/items/x", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "invalid product", method: http.MethodPost, path: "/v1/products", body: catalogv1.ProductInput{Name: "x"}, want: http.StatusBadRequest},
		{name: "bad order limit", method: http.MethodGet, path: "/v1/orders?limit=all", want: http.StatusBadRequest},
		{name: "missing customer", method: http.MethodPost, path: "/v1/carts/00000000-0000-0000-0000-000000000001/checkout", body: checkoutBody{}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr errorEnvelope
			if code := do(t, r, tt.method, tt.path, tt.body, &apiErr); code != tt.want {
				t.Fatalf("status %d want %d (%+v)", code, tt.want, apiErr)
			}
			if apiErr.Error.Message == "" {
				t.Fatalf("error envelope missing: %+v", apiErr)
			}
		})
	}
}

func TestGatewayHealth(t *testing.T) {
	r := newTestRouter(t)
	if code := do(t, r, http.MethodGet, "/healthz", nil, nil); code != http.StatusOK {
		t.Fatalf("healthz: %d", code)
	}
	if code := do(t, r, http.MethodGet, "/readyz", nil, nil); code != http.StatusOK {
		t.Fatalf("readyz: %d", code)
	}
}
