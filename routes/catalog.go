package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes wires the make/model reference catalog
func SetupCatalogRoutes(app *fiber.App, catalogController *controllers.CatalogController) {
	makes := app.Group("/api/vehicle-makes", utils.AuthMiddleware)

	// GET /api/vehicle-makes - makes with their models, ?search= filter
	makes.Get("/", catalogController.ListMakes)

	// POST /api/vehicle-makes - register a make (inspector or admin)
	makes.Post("/", catalogController.CreateMake)

	models := app.Group("/api/vehicle-models", utils.AuthMiddleware)

	// GET /api/vehicle-models - models, ?make= / ?make_name= / ?search= filters
	models.Get("/", catalogController.ListModels)

	// POST /api/vehicle-models - register a model (inspector or admin)
	models.Post("/", catalogController.CreateModel)
}
