package main

import (
	"net/http"
	"strconv"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	client *catalogv1.Client
}

// GET /v1/products?q=&category=&min_price=&max_price=&page=
func (h *catalogHandler) browse(c *gin.Context) {
	req := &catalogv1.BrowseRequest{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}

	var err error
	if req.MinPrice, err = optionalInt64(c, "min_price"); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "min_price must be an integer amount in minor units")
		return
	}
	if req.MaxPrice, err = optionalInt64(c, "max_price"); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "max_price must be an integer amount in minor units")
		return
	}
	if raw := c.Query("page"); raw != "" {
		if req.Page, err = strconv.Atoi(raw); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "page must be an integer")
			return
		}
	}

	resp, err := h.client.Browse(c.Request.Context(), req)
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func optionalInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GET /v1/categories
func (h *catalogHandler) listCategories(c *gin.Context) {
	resp, err := h.client.ListCategories(c.Request.Context(), &catalogv1.ListCategoriesRequest{})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/products/:id
func (h *catalogHandler) getProduct(c *gin.Context) {
	resp, err := h.client.GetProduct(c.Request.Context(), &catalogv1.GetProductRequest{ID: c.Param("id")})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /v1/products
func (h *catalogHandler) createProduct(c *gin.Context) {
	var in catalogv1.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body")
		return
	}
	resp, err := h.client.CreateProduct(c.Request.Context(), &catalogv1.CreateProductRequest{Product: in})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// PUT /v1/products/:id
func (h *catalogHandler) updateProduct(c *gin.Context) {
	var in catalogv1.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body")
		return
	}
	resp, err := h.client.UpdateProduct(c.Request.Context(), &catalogv1.UpdateProductRequest{ID: c.Param("id"), Product: in})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /v1/products/:id
func (h *catalogHandler) deleteProduct(c *gin.Context) {
	if _, err := h.client.DeleteProduct(c.Request.Context(), &catalogv1.DeleteProductRequest{ID: c.Param("id")}); err != nil {
		respondGRPCError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type cartHandler struct {
	client *cartv1.Client
}

// POST /v1/carts
func (h *cartHandler) createSession(c *gin.Context) {
	resp, err := h.client.CreateSession(c.Request.Context(), &cartv1.CreateSessionRequest{})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /v1/carts/:session
func (h *cartHandler) getCart(c *gin.Context) {
	resp, err := h.client.GetCart(c.Request.Context(), &cartv1.GetCartRequest{SessionID: c.Param("session")})
	h.reply(c, resp, err)
}

type addItemBody struct {
	ProductID string `json:"product_id" binding:"required"`
}

// POST /v1/carts/:session/items
func (h *cartHandler) addItem(c *gin.Context) {
	var body addItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "product_id is required")
		return
	}
	resp, err := h.client.AddItem(c.Request.Context(), &cartv1.AddItemRequest{
		SessionID: c.Param("session"),
		ProductID: body.ProductID,
	})
	h.reply(c, resp, err)
}

type updateQuantityBody struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// PUT /v1/carts/:session/items/:id
func (h *cartHandler) updateQuantity(c *gin.Context) {
	var body updateQuantityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "quantity is required")
		return
	}
	resp, err := h.client.UpdateQuantity(c.Request.Context(), &cartv1.UpdateQuantityRequest{
		SessionID: c.Param("session"),
		ProductID: c.Param("id"),
		Quantity:  *body.Quantity,
	})
	h.reply(c, resp, err)
}

// DELETE /v1/carts/:session/items/:id
func (h *cartHandler) removeItem(c *gin.Context) {
	resp, err := h.client.RemoveItem(c.Request.Context(), &cartv1.RemoveItemRequest{
		SessionID: c.Param("session"),
		ProductID: c.Param("id"),
	})
	h.reply(c, resp, err)
}

// DELETE /v1/carts/:session
func (h *cartHandler) clearCart(c *gin.Context) {
	resp, err := h.client.ClearCart(c.Request.Context(), &cartv1.ClearCartRequest{SessionID: c.Param("session")})
	h.reply(c, resp, err)
}

func (h *cartHandler) reply(c *gin.Context, resp *cartv1.CartResponse, err error) {
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type checkoutHandler struct {
	client *checkoutv1.Client
}

// GET /v1/carts/:session/quote
func (h *checkoutHandler) quote(c *gin.Context) {
	resp, err := h.client.Quote(c.Request.Context(), &checkoutv1.QuoteRequest{SessionID: c.Param("session")})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type checkoutBody struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// POST /v1/carts/:session/checkout
func (h *checkoutHandler) checkout(c *gin.Context) {
	var body checkoutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body")
		return
	}
	resp, err := h.client.Checkout(c.Request.Context(), &checkoutv1.CheckoutRequest{
		SessionID: c.Param("session"),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Address:   body.Address,
		Phone:     body.Phone,
	})
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type orderHandler struct {
	client *orderv1.Client
}

// GET /v1/orders?limit=
func (h *orderHandler) list(c *gin.Context) {
	req := &orderv1.ListOrdersRequest{}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.client.ListOrders(c.Request.Context(), req)
	if err != nil {
		respondGRPCError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
