package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/santoko/kasir-api/internal/application/auth"
	"github.com/santoko/kasir-api/internal/application/cart"
	"github.com/santoko/kasir-api/internal/application/checkout"
	"github.com/santoko/kasir-api/internal/application/customer"
	"github.com/santoko/kasir-api/internal/application/sale"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CartUC     *cart.UseCase
	CheckoutUC *checkout.UseCase
	CustomerUC *customer.UseCase
	SaleUC     *sale.UseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.Search)
	customers.Get("/:id", customerHandler.Get)

	// Carts
	carts := protected.Group("/carts")
	cartHandler := NewCartHandler(deps.CartUC)
	carts.Post("/", cartHandler.Open)
	carts.Get("/:id", cartHandler.Get)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Put("/:id/items/:barcode", cartHandler.SetQuantity)
	carts.Delete("/:id/items/:barcode", cartHandler.DeleteItem)

	// Checkout
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	protected.Post("/checkout", checkoutHandler.Finalize)

	// Sales (read-only)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/:id", saleHandler.Get)
	sales.Get("/:id/receipt", saleHandler.Receipt)
}
