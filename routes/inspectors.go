package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupInspectorRoutes wires inspector management (admin only, enforced in the controller)
func SetupInspectorRoutes(app *fiber.App, inspectorController *controllers.InspectorController) {
	inspectors := app.Group("/api/inspectors", utils.AuthMiddleware)

	// GET /api/inspectors - list inspectors
	inspectors.Get("/", inspectorController.ListInspectors)

	// POST /api/inspectors - create an inspector with its nested account
	inspectors.Post("/", inspectorController.CreateInspector)

	// GET /api/inspectors/:id - inspector details
	inspectors.Get("/:id", inspectorController.GetInspector)

	// PUT /api/inspectors/:id - update an inspector
	inspectors.Put("/:id", inspectorController.UpdateInspector)

	// DELETE /api/inspectors/:id - remove an inspector
	inspectors.Delete("/:id", inspectorController.DeleteInspector)
}
