package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-scomm/internal/application/analytics"
	"github.com/jhoicas/inventario-scomm/internal/application/auth"
	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *auth.UserUseCase
	ProductUC   *inventory.ProductUseCase
	MovementsUC *inventory.MovementQueryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportsUC   *appanalytics.ReportsUseCase
	CustomUC    *report.CustomReportUseCase
	Validator   validator.Validator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	editor := RequireRole(entity.RoleEditor)
	admin := RequireRole(entity.RoleAdmin)

	// Products: lectura para todos, escritura editor o admin.
	// /export va antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CustomUC, deps.Validator)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Post("/", editor, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", editor, productHandler.Update)
	products.Delete("/:id", editor, productHandler.Delete)
	products.Post("/:id/adjust", editor, productHandler.Adjust)

	inventoryHandler := NewInventoryHandler(deps.MovementsUC, deps.Validator)
	protected.Get("/inventory/movements", inventoryHandler.ListMovements)

	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).Get)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC, deps.CustomUC, deps.Validator)
	reports.Get("/", reportHandler.Get)
	reports.Get("/custom/options", reportHandler.Options)
	reports.Post("/custom", reportHandler.Custom)
	reports.Post("/custom/export", reportHandler.Export)

	// Users (solo admin)
	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC, deps.Validator)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)
}
