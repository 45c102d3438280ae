package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/facturapp-api/internal/application/analytics"
	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
	"github.com/jhoicas/facturapp-api/internal/application/usecase"
	"github.com/jhoicas/facturapp-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC      *usecase.UserUseCase
	ShopUC      *usecase.ShopUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Metrics     *metrics.Registry
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Gatherer(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	current := CurrentUser(deps.UserUC)

	// Users: solo token (el usuario local puede no existir todavía)
	users := api.Group("/users", auth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/ensure", userHandler.Ensure)
	users.Get("/me", userHandler.Me)

	// Shops
	shops := api.Group("/shops", auth, current)
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Get("/", shopHandler.List)
	shops.Post("/", shopHandler.Create)

	shop := shops.Group("/:shopId", RequireShopAccess(deps.ShopUC))
	shop.Get("/", shopHandler.Get)
	shop.Put("/", shopHandler.Update)
	shop.Delete("/", shopHandler.Delete)
	shop.Get("/members", shopHandler.ListMembers)
	shop.Post("/members", shopHandler.AddMember)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	shop.Get("/categories", categoryHandler.List)
	shop.Post("/categories", categoryHandler.Create)
	shop.Put("/categories/:id", categoryHandler.Update)
	shop.Delete("/categories/:id", categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	shop.Get("/products", productHandler.List)
	shop.Post("/products", productHandler.Create)
	shop.Get("/products/barcode/:barcode", productHandler.GetByBarcode)
	shop.Get("/products/:id", productHandler.GetByID)
	shop.Put("/products/:id", productHandler.Update)
	shop.Delete("/products/:id", productHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.StockUC)
	shop.Post("/stock/movements", inventoryHandler.ApplyMovements)
	shop.Get("/stock/movements", inventoryHandler.History)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PaymentUC)
	shop.Get("/invoices", invoiceHandler.ListForShop)
	shop.Post("/invoices", invoiceHandler.Create)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	shop.Get("/dashboard", dashboardHandler.Overview)
	shop.Get("/dashboard/stats", dashboardHandler.Stats)
	shop.Get("/dashboard/sales-7-days", dashboardHandler.SalesLast7Days)
	shop.Get("/dashboard/monthly-sales", dashboardHandler.MonthlySales)
	shop.Get("/dashboard/low-stock", dashboardHandler.LowStock)

	// Invoices: acceso verificado por factura en los casos de uso
	invoices := api.Group("/invoices", auth, current)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Save)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
}
