package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/order"
	"github.com/jhoicas/bodega-api/internal/application/partner"
	"github.com/jhoicas/bodega-api/internal/application/report"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *ledger.LedgerUseCase
	AuthUC    *auth.AuthUseCase
	PartnerUC *partner.PartnerUseCase
	OrderUC   *order.OrderUseCase
	ReportUC  *report.ReportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público: solo login)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.List)
	users.Put("/:id/role", authHandler.UpdateRole)
	users.Post("/:id/block", authHandler.ToggleBlock)

	// Products y operaciones de stock
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)
	products.Put("/:sku", productHandler.Update)
	products.Post("/:sku/entries", productHandler.AddStock)
	products.Post("/:sku/relocation", productHandler.Move)

	// Checkouts (salidas) y reversiones
	checkouts := protected.Group("/checkouts")
	checkoutHandler := NewCheckoutHandler(deps.LedgerUC)
	checkouts.Post("/", checkoutHandler.Create)
	checkouts.Get("/", checkoutHandler.List)
	checkouts.Get("/:sequenceId", checkoutHandler.GetBySequenceID)
	checkouts.Post("/:sequenceId/reversals", checkoutHandler.Reverse)

	// Partners (clientes/proveedores)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)

	// Orders (importación por IA)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/import", orderHandler.Import)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	// Reports y exportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movements.csv", reportHandler.MovementsCSV)
	reports.Get("/checkouts.xlsx", reportHandler.CheckoutsXLSX)
	products.Get("/:sku/label", reportHandler.ProductLabel)
}
