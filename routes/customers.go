package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCustomerRoutes wires customer management (admin only, enforced in the controller)
func SetupCustomerRoutes(app *fiber.App, customerController *controllers.CustomerController) {
	customers := app.Group("/api/customers", utils.AuthMiddleware)

	// GET /api/customers - list customers
	customers.Get("/", customerController.ListCustomers)

	// POST /api/customers - create a customer with its nested account
	customers.Post("/", customerController.CreateCustomer)

	// GET /api/customers/:id - customer details
	customers.Get("/:id", customerController.GetCustomer)

	// PUT /api/customers/:id - update a customer
	customers.Put("/:id", customerController.UpdateCustomer)

	// DELETE /api/customers/:id - remove a customer
	customers.Delete("/:id", customerController.DeleteCustomer)
}
