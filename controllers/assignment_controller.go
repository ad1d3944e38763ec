package controllers

import (
	"strconv"
	"time"

	"fleetportal-backend/models"
	"fleetportal-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssignmentController handles vehicle-to-inspector assignments. Inspectors
// see their own queue, admins see and manage everything.
type AssignmentController struct {
	DB *gorm.DB
}

// NewAssignmentController creates a new AssignmentController instance
func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

// AssignmentRequest is the create/update payload
type AssignmentRequest struct {
	Vehicle      uint   `json:"vehicle"`
	Inspector    uint   `json:"inspector"`
	ScheduledFor string `json:"scheduled_for"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks"`
}

func assignmentPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("Inspector").
		Preload("Inspector.Profile").
		Preload("Inspector.Profile.User")
}

// ListAssignments returns the assignments visible to the caller
func (ac *AssignmentController) ListAssignments(c *fiber.Ctx) error {
	profile := requireInspectorOrAdmin(c, ac.DB)
	if profile == nil {
		return forbidden(c)
	}

	query := services.ScopeAssignments(ac.DB, assignmentPreloads(ac.DB), profile)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var assignments []models.VehicleAssignment
	if err := query.Order("id DESC").Find(&assignments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load assignments"})
	}
	return c.JSON(assignments)
}

// GetAssignment returns one assignment when visible to the caller
func (ac *AssignmentController) GetAssignment(c *fiber.Ctx) error {
	profile := requireInspectorOrAdmin(c, ac.DB)
	if profile == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment models.VehicleAssignment
	query := services.ScopeAssignments(ac.DB, assignmentPreloads(ac.DB), profile)
	if err := query.First(&assignment, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Assignment not found"})
	}
	return c.JSON(assignment)
}

// CreateAssignment schedules an inspector for a vehicle; admin only
func (ac *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	profile := requireAdmin(c, ac.DB)
	if profile == nil {
		return forbidden(c)
	}

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var vehicle models.Vehicle
	if err := ac.DB.First(&vehicle, req.Vehicle).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"vehicle": "Invalid vehicle ID"}})
	}
	var inspector models.InspectorProfile
	if err := ac.DB.Where("is_active = ?", true).First(&inspector, req.Inspector).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"inspector": "Invalid inspector ID"}})
	}

	assignment := models.VehicleAssignment{
		VehicleID:    vehicle.ID,
		InspectorID:  inspector.ID,
		AssignedByID: profile.ID,
		Status:       models.AssignmentStatusAssigned,
		Remarks:      req.Remarks,
	}
	if req.ScheduledFor != "" {
		scheduled, err := parseScheduleTime(req.ScheduledFor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"scheduled_for": "Invalid datetime format"}})
		}
		assignment.ScheduledFor = &scheduled
	}
	if req.Status != "" {
		if !validAssignmentStatus(req.Status) {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"status": "'" + req.Status + "' is not a valid status."}})
		}
		assignment.Status = req.Status
	}

	if err := ac.DB.Create(&assignment).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create assignment"})
	}

	assignmentPreloads(ac.DB).First(&assignment, assignment.ID)
	return c.Status(201).JSON(assignment)
}

// UpdateAssignment applies changes to an assignment; admin only
func (ac *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	if requireAdmin(c, ac.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment models.VehicleAssignment
	if err := ac.DB.First(&assignment, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Assignment not found"})
	}

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Vehicle != 0 {
		var vehicle models.Vehicle
		if err := ac.DB.First(&vehicle, req.Vehicle).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"vehicle": "Invalid vehicle ID"}})
		}
		assignment.VehicleID = vehicle.ID
	}
	if req.Inspector != 0 {
		var inspector models.InspectorProfile
		if err := ac.DB.Where("is_active = ?", true).First(&inspector, req.Inspector).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"inspector": "Invalid inspector ID"}})
		}
		assignment.InspectorID = inspector.ID
	}
	if req.ScheduledFor != "" {
		scheduled, err := parseScheduleTime(req.ScheduledFor)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"scheduled_for": "Invalid datetime format"}})
		}
		assignment.ScheduledFor = &scheduled
	}
	if req.Status != "" {
		if !validAssignmentStatus(req.Status) {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"status": "'" + req.Status + "' is not a valid status."}})
		}
		assignment.Status = req.Status
	}
	if req.Remarks != "" {
		assignment.Remarks = req.Remarks
	}

	if err := ac.DB.Save(&assignment).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update assignment"})
	}

	assignmentPreloads(ac.DB).First(&assignment, assignment.ID)
	return c.JSON(assignment)
}

// DeleteAssignment removes an assignment; admin only
func (ac *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	if requireAdmin(c, ac.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	if err := ac.DB.Delete(&models.VehicleAssignment{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete assignment"})
	}
	return c.SendStatus(204)
}

func validAssignmentStatus(status string) bool {
	switch status {
	case models.AssignmentStatusAssigned, models.AssignmentStatusInProgress, models.AssignmentStatusCompleted:
		return true
	}
	return false
}

func parseScheduleTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
