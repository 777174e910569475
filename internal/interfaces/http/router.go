package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/billing"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Verifier    *auth.TokenVerifier
	Resolver    *auth.RoleResolver
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	ReconcileUC *inventory.ReconcileUseCase
}

// Router registra las rutas de la API. Todas las rutas bajo /api requieren
// Bearer Token; el gate de rol es uniforme: lecturas para user o admin,
// mutaciones y reconciliación solo admin. Un guest autenticado no pasa
// ningún gate de rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.Verifier))

	readers := RequireRole(deps.Resolver, entity.RoleAdmin, entity.RoleUser)
	admins := RequireRole(deps.Resolver, entity.RoleAdmin)

	// Auth (solo token válido, sin gate de rol: un guest puede cerrar sesión)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Verifier, deps.Resolver)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", readers, productHandler.List)
	products.Post("/", admins, productHandler.Create)
	products.Get("/:id", readers, productHandler.GetByID)
	products.Put("/:id", admins, productHandler.Update)
	products.Delete("/:id", admins, productHandler.Disable)

	// Warehouses (el detalle incluye el inventario anidado)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", readers, warehouseHandler.List)
	warehouses.Post("/", admins, warehouseHandler.Create)
	warehouses.Get("/:id", readers, warehouseHandler.Detail)
	warehouses.Get("/:id/inventory", readers, warehouseHandler.Inventory)
	warehouses.Delete("/:id", admins, warehouseHandler.Disable)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", readers, customerHandler.List)
	customers.Post("/", admins, customerHandler.Create)
	customers.Get("/:id", readers, customerHandler.GetByID)
	customers.Delete("/:id", admins, customerHandler.Disable)

	// Invoices: mismo handler parametrizado por tipo
	invoices := api.Group("/invoices")
	for _, k := range []entity.InvoiceKind{entity.InvoiceIncoming, entity.InvoiceOutgoing} {
		group := invoices.Group("/" + string(k))
		handler := NewInvoiceHandler(deps.InvoiceUC, k)
		group.Get("/", readers, handler.List)
		group.Post("/", admins, handler.Create)
		group.Get("/:id", readers, handler.GetByID)
		group.Delete("/:id", admins, handler.Disable)
	}

	// Inventory reconciliation (solo admin)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReconcileUC)
	invGroup.Post("/reconcile", admins, inventoryHandler.Reconcile)
}
