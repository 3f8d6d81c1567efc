package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/dashboard-facturas/internal/application/analytics"
	"github.com/jhoicas/dashboard-facturas/internal/application/auth"
	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
	"github.com/jhoicas/dashboard-facturas/internal/infrastructure/cache"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	InvoiceQuery   *billing.InvoiceQueryUseCase
	InvoiceMutator *billing.InvoiceMutator
	InvoicePDF     *billing.PDFUseCase
	CustomerUC     *billing.CustomerUseCase
	ViewCache      cache.ViewCache // nil desactiva la caché de vistas
	CacheTTL       time.Duration
	JWTSecret      string
	SessionTTL     time.Duration
	SecureCookie   bool
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionTTL, deps.SecureCookie)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ViewCacheMiddleware(deps.ViewCache, deps.CacheTTL, deps.Log))

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Overview)
	dashboard.Get("/revenue", dashboardHandler.Revenue)
	dashboard.Get("/latest-invoices", dashboardHandler.LatestInvoices)
	dashboard.Get("/cards", dashboardHandler.Cards)

	// Invoices
	invoices := dashboard.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceQuery, deps.InvoiceMutator, deps.InvoicePDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/pages", invoiceHandler.Pages)
	invoices.Get("/:id/edit", invoiceHandler.Edit)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	dashboard.Get("/customers", customerHandler.Table)
	protected.Get("/customers", customerHandler.Options)
}
