package controllers

import (
	"strconv"

	"fleetportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InspectorController handles inspector management; admin only
type InspectorController struct {
	DB *gorm.DB
}

// NewInspectorController creates a new InspectorController instance
func NewInspectorController(db *gorm.DB) *InspectorController {
	return &InspectorController{DB: db}
}

// InspectorRequest is the create/update payload with a nested account block
type InspectorRequest struct {
	Profile             ProfilePayload `json:"profile"`
	BadgeID             string         `json:"badge_id"`
	Certifications      string         `json:"certifications"`
	IsActive            *bool          `json:"is_active"`
	MaxDailyInspections int            `json:"max_daily_inspections"`
}

// ListInspectors returns all inspectors
func (ic *InspectorController) ListInspectors(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	var inspectors []models.InspectorProfile
	if err := ic.DB.Preload("Profile").Preload("Profile.User").Find(&inspectors).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inspectors"})
	}
	return c.JSON(inspectors)
}

// GetInspector returns one inspector
func (ic *InspectorController) GetInspector(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inspector ID"})
	}

	var inspector models.InspectorProfile
	if err := ic.DB.Preload("Profile").Preload("Profile.User").First(&inspector, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Inspector not found"})
	}
	return c.JSON(inspector)
}

// CreateInspector creates the inspector with its nested account atomically
func (ic *InspectorController) CreateInspector(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	var req InspectorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.BadgeID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Badge ID is required"})
	}

	var inspector models.InspectorProfile
	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := createPortalAccount(tx, req.Profile, models.RoleInspector)
		if err != nil {
			return err
		}
		maxDaily := req.MaxDailyInspections
		if maxDaily <= 0 {
			maxDaily = 8
		}
		inspector = models.InspectorProfile{
			ProfileID:           profile.ID,
			BadgeID:             req.BadgeID,
			Certifications:      req.Certifications,
			IsActive:            true,
			MaxDailyInspections: maxDaily,
		}
		if err := tx.Create(&inspector).Error; err != nil {
			return err
		}
		inspector.Profile = *profile
		return nil
	})
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create inspector"})
	}

	return c.Status(201).JSON(inspector)
}

// UpdateInspector applies changes to the inspector and its nested account
func (ic *InspectorController) UpdateInspector(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inspector ID"})
	}

	var inspector models.InspectorProfile
	if err := ic.DB.Preload("Profile").First(&inspector, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Inspector not found"})
	}

	var req InspectorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err = ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := updatePortalAccount(tx, &inspector.Profile, req.Profile); err != nil {
			return err
		}
		if req.BadgeID != "" {
			inspector.BadgeID = req.BadgeID
		}
		if req.Certifications != "" {
			inspector.Certifications = req.Certifications
		}
		if req.IsActive != nil {
			inspector.IsActive = *req.IsActive
		}
		if req.MaxDailyInspections > 0 {
			inspector.MaxDailyInspections = req.MaxDailyInspections
		}
		return tx.Save(&inspector).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update inspector"})
	}

	return c.JSON(inspector)
}

// DeleteInspector removes an inspector record
func (ic *InspectorController) DeleteInspector(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inspector ID"})
	}

	if err := ic.DB.Delete(&models.InspectorProfile{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete inspector"})
	}
	return c.SendStatus(204)
}
