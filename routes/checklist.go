package routes

import (
	"fleetportal-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupChecklistRoutes wires the read-only checklist structure (public access)
func SetupChecklistRoutes(app *fiber.App, checklistController *controllers.ChecklistController) {
	categories := app.Group("/api/categories")

	// GET /api/categories - category tree with active items
	categories.Get("/", checklistController.ListCategories)

	items := app.Group("/api/checklist-items")

	// GET /api/checklist-items - active items, ?category= filter
	items.Get("/", checklistController.ListItems)

	// GET /api/checklist-items/:id - item details
	items.Get("/:id", checklistController.GetItem)
}
