package handlers

import (
	"github.com/labstack/echo/v4"

	"beton/internal/middleware"
)

// Handlers bundles everything RegisterRoutes wires up.
type Handlers struct {
	Categories *CategoryHandler
	Products   *ProductHandler
	Variants   *VariantHandler
	Orders     *OrderHandler
}

// RegisterRoutes mounts the store API. Reads are open; mutations
// require the bearer token, except order creation which stays public
// for the storefront checkout.
func RegisterRoutes(e *echo.Echo, h Handlers, tokenHash string) {
	store := e.Group("/store")
	auth := middleware.BearerAuth(tokenHash)

	store.GET("/categories", h.Categories.List)
	store.GET("/categories/:slug", h.Categories.Get)
	store.POST("/categories", h.Categories.Create, auth)
	store.PATCH("/categories/:slug", h.Categories.Update, auth)
	store.DELETE("/categories/:slug", h.Categories.Delete, auth)

	store.GET("/products", h.Products.List)
	store.GET("/products/:slug", h.Products.Get)
	store.GET("/products/:slug/variants", h.Variants.ListByProduct)
	store.POST("/products", h.Products.Create, auth)
	store.PATCH("/products/:slug", h.Products.Update, auth)
	store.DELETE("/products/:slug", h.Products.Delete, auth)

	store.GET("/variants/:slug", h.Variants.Get)
	store.POST("/variants", h.Variants.Create, auth)
	store.PATCH("/variants/:slug", h.Variants.Update, auth)
	store.DELETE("/variants/:slug", h.Variants.Delete, auth)

	store.POST("/orders", h.Orders.Create)
	store.GET("/orders", h.Orders.List)
	store.GET("/orders/:id", h.Orders.Get)
	store.PATCH("/orders/:id", h.Orders.Update, auth)
	store.DELETE("/orders/:id", h.Orders.Delete, auth)
}
