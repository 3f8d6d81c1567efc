package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/dashboard-facturas/internal/application/analytics"
	"github.com/jhoicas/dashboard-facturas/internal/application/auth"
	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
	"github.com/jhoicas/dashboard-facturas/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/dashboard-facturas/internal/infrastructure/pdf"
	"github.com/jhoicas/dashboard-facturas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/dashboard-facturas/internal/interfaces/http"
	"github.com/jhoicas/dashboard-facturas/pkg/config"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
	"github.com/jhoicas/dashboard-facturas/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.App.MigrateOnStart {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// La conexión se abre con la primera consulta: el proceso arranca aunque la base no responda.
	pool := postgres.NewLazyPool(cfg.DB)
	defer pool.Close()

	ctx := context.Background()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	format := money.NewFormatter(cfg.Dashboard.Locale)
	viewCache := cache.New(ctx, cfg.Redis, log)
	if c, ok := viewCache.(io.Closer); ok {
		defer c.Close()
	}

	dashboardUC := appanalytics.NewDashboardUseCase(revenueRepo, invoiceRepo, customerRepo, format, log).
		WithSimulatedLatency(cfg.Dashboard.SimulatedLatency)
	invoiceQuery := billing.NewInvoiceQueryUseCase(invoiceRepo, customerRepo, log)
	invoiceMutator := billing.NewInvoiceMutator(invoiceRepo, customerRepo, viewCache, log)
	customerUC := billing.NewCustomerUseCase(customerRepo, format, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, format)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dashboard Facturas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		DashboardUC:    dashboardUC,
		InvoiceQuery:   invoiceQuery,
		InvoiceMutator: invoiceMutator,
		InvoicePDF:     invoicePDFUC,
		CustomerUC:     customerUC,
		ViewCache:      viewCache,
		CacheTTL:       cfg.Dashboard.CacheTTL,
		JWTSecret:      cfg.JWT.Secret,
		SessionTTL:     time.Duration(cfg.JWT.Expiration) * time.Minute,
		SecureCookie:   cfg.App.Env == "production",
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
