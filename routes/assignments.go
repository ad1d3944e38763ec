package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes wires assignment scheduling; inspectors see their own queue
func SetupAssignmentRoutes(app *fiber.App, assignmentController *controllers.AssignmentController) {
	assignments := app.Group("/api/assignments", utils.AuthMiddleware)

	// GET /api/assignments - assignments visible to the caller, ?status= filter
	assignments.Get("/", assignmentController.ListAssignments)

	// POST /api/assignments - schedule an inspection (admin)
	assignments.Post("/", assignmentController.CreateAssignment)

	// GET /api/assignments/:id - assignment details
	assignments.Get("/:id", assignmentController.GetAssignment)

	// PUT /api/assignments/:id - update an assignment (admin)
	assignments.Put("/:id", assignmentController.UpdateAssignment)

	// DELETE /api/assignments/:id - remove an assignment (admin)
	assignments.Delete("/:id", assignmentController.DeleteAssignment)
}
