package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes wires the admin attention counters
func SetupNotificationRoutes(app *fiber.App, notificationController *controllers.NotificationController) {
	notifications := app.Group("/api/notifications", utils.AuthMiddleware)

	// GET /api/notifications/summary - pending review and open assignment counts
	notifications.Get("/summary", notificationController.GetSummary)
}
