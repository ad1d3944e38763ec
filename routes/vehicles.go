package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupVehicleRoutes wires the vehicle endpoints; reads are role-scoped
func SetupVehicleRoutes(app *fiber.App, vehicleController *controllers.VehicleController) {
	vehicles := app.Group("/api/vehicles", utils.AuthMiddleware)

	// GET /api/vehicles - vehicles visible to the caller
	vehicles.Get("/", vehicleController.ListVehicles)

	// POST /api/vehicles - create a vehicle (inspector or admin)
	vehicles.Post("/", vehicleController.CreateVehicle)

	// GET /api/vehicles/:id - vehicle details
	vehicles.Get("/:id", vehicleController.GetVehicle)

	// PUT /api/vehicles/:id - update a vehicle (admin)
	vehicles.Put("/:id", vehicleController.UpdateVehicle)

	// DELETE /api/vehicles/:id - remove a vehicle (admin)
	vehicles.Delete("/:id", vehicleController.DeleteVehicle)
}
