package routes

import (
	"fleetportal-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the token endpoint
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/api/auth")

	// POST /api/auth/token - exchange credentials for a JWT
	auth.Post("/token", authController.ObtainToken)
}
