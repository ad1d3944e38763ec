package routes

import (
	"fleetportal-backend/controllers"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupInspectionRoutes wires the inspection workflow
func SetupInspectionRoutes(app *fiber.App, inspectionController *controllers.InspectionController) {
	inspections := app.Group("/api/inspections", utils.AuthMiddleware)

	// GET /api/inspections - inspections visible to the caller, ?status= filter
	inspections.Get("/", inspectionController.ListInspections)

	// POST /api/inspections - create an inspection (JSON or bracketed multipart)
	inspections.Post("/", inspectionController.CreateInspection)

	// GET /api/inspections/:id - full inspection aggregate
	inspections.Get("/:id", inspectionController.GetInspection)

	// PUT /api/inspections/:id - update, fully replacing the response set
	inspections.Put("/:id", inspectionController.UpdateInspection)

	// POST /api/inspections/:id/submit - finalize for customer review
	inspections.Post("/:id/submit", inspectionController.SubmitInspection)

	// POST /api/inspections/:id/approve - publish the report (admin)
	inspections.Post("/:id/approve", inspectionController.ApproveInspection)

	// GET /api/inspections/:id/report - printable HTML report
	inspections.Get("/:id/report", inspectionController.GetReportHTML)

	// GET /api/inspections/:id/report_pdf - PDF rendering, 503 without wkhtmltopdf
	inspections.Get("/:id/report_pdf", inspectionController.GetReportPDF)
}
