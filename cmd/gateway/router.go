package main

import (
	"net/http"
	"time"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

func newRouter(conn *grpc.ClientConn, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		switch conn.GetState() {
		case connectivity.TransientFailure, connectivity.Shutdown:
			respondError(c, http.StatusServiceUnavailable, "UNAVAILABLE", "storefront backend unreachable")
		default:
			c.Status(http.StatusOK)
		}
	})

	catalog := &catalogHandler{client: catalogv1.NewClient(conn)}
	cart := &cartHandler{client: cartv1.NewClient(conn)}
	checkout := &checkoutHandler{client: checkoutv1.NewClient(conn)}
	orders := &orderHandler{client: orderv1.NewClient(conn)}

	v1 := r.Group("/v1")
	{
		v1.GET("/products", catalog.browse)
		v1.POST("/products", catalog.createProduct)
		v1.GET("/products/:id", catalog.getProduct)
		v1.PUT("/products/:id", catalog.updateProduct)
		v1.DELETE("/products/:id", catalog.deleteProduct)
		v1.GET("/categories", catalog.listCategories)

		v1.POST("/carts", cart.createSession)
		v1.GET("/carts/:session", cart.getCart)
		v1.DELETE("/carts/:session", cart.clearCart)
		v1.POST("/carts/:session/items", cart.addItem)
		v1.PUT("/carts/:session/items/:id", cart.updateQuantity)
		v1.DELETE("/carts/:session/items/:id", cart.removeItem)

		v1.GET("/carts/:session/quote", checkout.quote)
		v1.POST("/carts/:session/checkout", checkout.checkout)

		v1.GET("/orders", orders.list)
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("http request", fields...)
			return
		}
		log.Debug("http request", fields...)
	}
}
