package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/facturapp-api/internal/application/analytics"
	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
	"github.com/jhoicas/facturapp-api/internal/application/usecase"
	"github.com/jhoicas/facturapp-api/internal/infrastructure/metrics"
	"github.com/jhoicas/facturapp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturapp-api/internal/interfaces/http"
	"github.com/jhoicas/facturapp-api/pkg/config"
	"github.com/jhoicas/facturapp-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.WithComponent("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Billing.AutoMigrate {
		version, err := postgres.Migrate(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	}

	reg := metrics.New()

	userRepo := postgres.NewUserRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := usecase.NewUserUseCase(userRepo)
	shopUC := usecase.NewShopUseCase(shopRepo, userRepo, log.WithComponent("shops"))
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	stockUC := inventory.NewStockUseCase(txRunner, movementRepo, time.Now, log.WithComponent("stock"), reg)

	billingLog := log.WithComponent("billing")
	overdueUC := billing.NewOverdueUseCase(invoiceRepo, time.Now, billingLog, reg)
	idGen := billing.NewIDGenerator(invoiceRepo, nil, billingLog, reg)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, shopRepo, txRunner, idGen, overdueUC, billing.Config{
		DefaultVATRate: cfg.Billing.DefaultVATRate,
		Now:            time.Now,
	}, billingLog)
	paymentUC := billing.NewPaymentUseCase(invoiceRepo, shopRepo, txRunner, time.Now, billingLog, reg)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, cfg.Billing.LowStockThreshold, time.Now).
		WithCurrency(cfg.Billing.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http"), reg))

	if cfg.RateLimit.Rate != "" {
		limiter, err := httpRouter.NewRateLimiter(cfg.RateLimit.Rate)
		if err != nil {
			log.Fatal().Err(err).Str("rate", cfg.RateLimit.Rate).Msg("rate limit inválido")
		}
		app.Use("/api", httpRouter.RateLimitMiddleware(limiter))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FacturApp API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:      userUC,
		ShopUC:      shopUC,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		StockUC:     stockUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		DashboardUC: dashboardUC,
		Metrics:     reg,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
