package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	appanalytics "github.com/jhoicas/prateleira-api/internal/application/analytics"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/application/usecase"
	"github.com/jhoicas/prateleira-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	ShelfUC           *usecase.ShelfUseCase
	CategoryUC        *usecase.CategoryUseCase
	Ledger            *inventory.LedgerUseCase
	ShelfCapacity     *inventory.ShelfCapacityUseCase
	Replenishment     *inventory.ReplenishmentUseCase
	AlertEngine       *alert.EngineUseCase
	DashboardUC       *appanalytics.DashboardUseCase
	JWTSecret         string
	JWTIssuer         string
	WarningDays       int
	LowStockThreshold int
}

// Router registra las rutas de la API. Lecturas públicas; escrituras con Bearer Token;
// borrados y escaneos solo para admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger, deps.WarningDays, deps.LowStockThreshold)
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	products.Get("/", productHandler.List)
	products.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/near-expiry", productHandler.NearExpiry)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.Movements)
	products.Post("/", auth, anyRole, productHandler.Create)
	products.Put("/:id", auth, anyRole, productHandler.Update)
	products.Delete("/:id", auth, adminOnly, productHandler.Delete)

	// Movements
	movements := api.Group("/movements", auth, anyRole)
	movements.Post("/inbound", inventoryHandler.RegisterInbound)
	movements.Post("/outbound", inventoryHandler.RegisterOutbound)

	// Alerts
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertEngine, deps.WarningDays, deps.LowStockThreshold)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/unresolved", alertHandler.ListUnresolved)
	alerts.Get("/:id", alertHandler.GetByID)
	alerts.Post("/", auth, anyRole, alertHandler.Create)
	alerts.Put("/:id/resolve", auth, anyRole, alertHandler.Resolve)
	alerts.Post("/scan/expirations", auth, adminOnly, alertHandler.ScanExpirations)
	alerts.Post("/scan/low-stock", auth, adminOnly, alertHandler.ScanLowStock)

	// Shelves
	shelves := api.Group("/shelves")
	shelfHandler := NewShelfHandler(deps.ShelfUC, deps.ShelfCapacity)
	shelves.Get("/", shelfHandler.List)
	shelves.Get("/:id", shelfHandler.GetByID)
	shelves.Get("/:id/available-space", shelfHandler.AvailableSpace)
	shelves.Post("/", auth, anyRole, shelfHandler.Create)
	shelves.Put("/:id", auth, anyRole, shelfHandler.Update)
	shelves.Delete("/:id", auth, adminOnly, shelfHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", auth, anyRole, categoryHandler.Create)
	categories.Put("/:id", auth, anyRole, categoryHandler.Update)
	categories.Delete("/:id", auth, adminOnly, categoryHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
