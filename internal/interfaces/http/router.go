package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *inventory.LedgerUseCase
	ProductUC  *usecase.ProductUseCase
	ImportUC   *catalog.ImportUseCase
	LocationUC *usecase.LocationUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/history", inventoryHandler.History)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ImportUC)
	products.Get("/", productHandler.List)
	products.Post("/upload", RequireRole(entity.RoleAdmin), productHandler.Upload)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
}
