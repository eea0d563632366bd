package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/repofactory"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/session"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router. Los repositorios llegan ya
// seleccionados por el factory: aquí no se ramifica por modo.
type RouterDeps struct {
	Repos     *repofactory.Repositories
	Resolver  *session.Resolver
	JWTSecret string
	JWTIssuer string
	JWTExpMin int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Repos.Actors, deps.Resolver, deps.JWTSecret, deps.JWTIssuer, deps.JWTExpMin)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token + actor resoluble)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Resolver))
	protected.Get("/auth/me", authHandler.Me)

	// Catálogo
	productHandler := NewProductHandler(deps.Repos.Products)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/search", productHandler.Search)
	products.Get("/category/:category", productHandler.ByCategory)

	// Pedidos
	orderHandler := NewOrderHandler(deps.Repos.Orders)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/admin", RequireRole(entity.RoleAdmin, entity.RoleCommercial, entity.RoleLogistics), orderHandler.AdminList)
	orders.Get("/recent", orderHandler.Recent)
	orders.Get("/:reference", orderHandler.GetByReference)
	orders.Post("/:reference/validate", orderHandler.Validate)
	orders.Patch("/:reference/status", orderHandler.UpdateStatus)

	// Clientes
	customerHandler := NewCustomerHandler(deps.Repos.Customers)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/history", orderHandler.CustomerHistory)

	// Cotización del cobre
	priceHandler := NewMarketPriceHandler(deps.Repos.MarketPrices)
	prices := protected.Group("/market-price")
	prices.Get("/latest", priceHandler.Latest)
	prices.Get("/history", priceHandler.History)
}
