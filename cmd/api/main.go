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

	_ "github.com/jhoicas/inventario-scomm/docs"
	appanalytics "github.com/jhoicas/inventario-scomm/internal/application/analytics"
	"github.com/jhoicas/inventario-scomm/internal/application/auth"
	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/inventario-scomm/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-scomm/internal/interfaces/http"
	"github.com/jhoicas/inventario-scomm/pkg/config"
	"github.com/jhoicas/inventario-scomm/pkg/logger"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// @title        Inventario SCOMM API
// @version      1.0
// @description  Inventario de productos con historial de movimientos, reportes y exportaciones.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	loc := cfg.App.Location()
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	customRepo := postgres.NewCustomReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := auth.NewUserUseCase(userRepo, txRunner, log)
	if cfg.Seed.DefaultUsers {
		n, err := userUC.SeedDefaultUsers(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuarios por defecto")
		}
		if n > 0 {
			log.Info().Int("usuarios", n).Msg("usuarios por defecto creados")
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	ledger := inventory.NewLedgerWriter(movementRepo, log)
	productUC := inventory.NewProductUseCase(productRepo, ledger, log)
	movementsUC := inventory.NewMovementQueryUseCase(movementRepo, loc)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo, productRepo, movementRepo)
	reportsUC := appanalytics.NewReportsUseCase(reportRepo)

	// Exportadores de reportes: CSV, Excel y PDF.
	customUC := report.NewCustomReportUseCase(customRepo, productRepo, loc,
		export.NewCSVExporter(),
		export.NewXLSXExporter(),
		infrapdf.NewMarotoReportGenerator(cfg.App.Name),
	)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar validador")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario SCOMM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		MovementsUC: movementsUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
		CustomUC:    customUC,
		Validator:   v,
		JWTSecret:   cfg.JWT.Secret,
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
