package controllers

import (
	"strconv"

	"fleetportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ChecklistController serves the read-only inspection checklist structure.
// The category tree is reference data consumed by every client, so it is
// served without authentication.
type ChecklistController struct {
	DB *gorm.DB
}

// NewChecklistController creates a new ChecklistController instance
func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{DB: db}
}

// ListCategories returns all categories with their active items in display order
func (cc *ChecklistController) ListCategories(c *fiber.Ctx) error {
	var categories []models.InspectionCategory
	err := cc.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Order("id ASC")
	}).Order("display_order ASC").Find(&categories).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load categories"})
	}
	return c.JSON(categories)
}

// ListItems returns all active checklist items, optionally filtered by category
func (cc *ChecklistController) ListItems(c *fiber.Ctx) error {
	query := cc.DB.Where("is_active = ?", true).Order("id ASC")
	if categoryID := c.Query("category"); categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		query = query.Where("category_id = ?", id)
	}

	var items []models.ChecklistItem
	if err := query.Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load checklist items"})
	}
	return c.JSON(items)
}

// GetItem returns one active checklist item
func (cc *ChecklistController) GetItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid checklist item ID"})
	}

	var item models.ChecklistItem
	if err := cc.DB.Where("is_active = ?", true).First(&item, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Checklist item not found"})
	}
	return c.JSON(item)
}
