package controllers

import (
	"fleetportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController surfaces the admin attention counters: inspections
// waiting for review and assignments still open.
type NotificationController struct {
	DB *gorm.DB
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetSummary returns the pending work counters; admin only
func (nc *NotificationController) GetSummary(c *fiber.Ctx) error {
	if requireAdmin(c, nc.DB) == nil {
		return forbidden(c)
	}

	var pendingReview int64
	if err := nc.DB.Model(&models.Inspection{}).
		Where("status = ?", models.InspectionStatusSubmitted).
		Count(&pendingReview).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	var openAssignments int64
	if err := nc.DB.Model(&models.VehicleAssignment{}).
		Where("status IN ?", []string{models.AssignmentStatusAssigned, models.AssignmentStatusInProgress}).
		Count(&openAssignments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load summary"})
	}

	return c.JSON(fiber.Map{
		"inspections_pending_review": pendingReview,
		"open_assignments":           openAssignments,
	})
}
