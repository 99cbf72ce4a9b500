package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermart-pos/internal/application/catalog"
	"github.com/jhoicas/supermart-pos/internal/application/directory"
	"github.com/jhoicas/supermart-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	DirectoryUC *directory.UseCase
	Session     *sales.Session
	Ledger      *sales.Ledger
	Receipts    sales.ReceiptRenderer
	TaxRate     decimal.Decimal
	Showroom    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	items := api.Group("/items")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items.Get("/", catalogHandler.List)
	items.Post("/", catalogHandler.Create)
	items.Get("/:id", catalogHandler.GetByID)
	items.Put("/:id", catalogHandler.Update)
	items.Delete("/:id", catalogHandler.Delete)
	items.Post("/:id/stock", catalogHandler.AdjustStock)

	// Directorio
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	customers := api.Group("/customers")
	customers.Get("/", directoryHandler.ListCustomers)
	customers.Post("/", directoryHandler.CreateCustomer)
	customers.Get("/next-id", directoryHandler.NextCustomerID)
	customers.Put("/:id", directoryHandler.RenameCustomer)
	customers.Delete("/:id", directoryHandler.DeleteCustomer)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", directoryHandler.ListSuppliers)
	suppliers.Post("/", directoryHandler.CreateSupplier)
	suppliers.Delete("/", directoryHandler.DeleteSupplier)

	// Venta en curso (una sola factura en vuelo por tienda)
	salesHandler := NewSalesHandler(deps.Session, deps.Ledger, deps.Receipts, deps.TaxRate, deps.Showroom)
	invoice := api.Group("/invoice")
	invoice.Post("/", salesHandler.Start)
	invoice.Get("/", salesHandler.Current)
	invoice.Delete("/", salesHandler.Discard)
	invoice.Post("/lines", salesHandler.AddLine)
	invoice.Put("/lines/:index", salesHandler.ChangeQty)
	invoice.Delete("/lines/:index", salesHandler.RemoveLine)
	invoice.Post("/clear", salesHandler.Clear)
	invoice.Post("/discount", salesHandler.SetDiscount)
	invoice.Post("/confirm", salesHandler.Confirm)

	// Historial de ventas y recibos
	salesGroup := api.Group("/sales")
	salesGroup.Get("/", salesHandler.History)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)
}
