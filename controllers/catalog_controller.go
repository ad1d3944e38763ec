package controllers

import (
	"strconv"
	"strings"

	"fleetportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the make/model reference catalog. The catalog is
// fed automatically from vehicle writes, but inspectors and admins can also
// register entries directly.
type CatalogController struct {
	DB *gorm.DB
}

// NewCatalogController creates a new CatalogController instance
func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// MakeRequest is the payload for registering a make
type MakeRequest struct {
	Name string `json:"name"`
}

// ModelRequest is the payload for registering a model under a make
type ModelRequest struct {
	Make uint   `json:"make"`
	Name string `json:"name"`
}

// ListMakes returns makes with their models, optionally filtered by search
func (cc *CatalogController) ListMakes(c *fiber.Ctx) error {
	query := cc.DB.Preload("Models", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Order("name ASC")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var makes []models.VehicleMake
	if err := query.Find(&makes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load makes"})
	}
	return c.JSON(makes)
}

// CreateMake registers a make by name, returning the existing row on conflict
func (cc *CatalogController) CreateMake(c *fiber.Ctx) error {
	if requireInspectorOrAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	var req MakeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"name": "This field may not be blank."}})
	}

	var makeEntry models.VehicleMake
	if err := cc.DB.Where("name = ?", name).First(&makeEntry).Error; err == nil {
		return c.JSON(makeEntry)
	}
	makeEntry = models.VehicleMake{Name: name}
	if err := cc.DB.Create(&makeEntry).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create make"})
	}
	return c.Status(201).JSON(makeEntry)
}

// ListModels returns catalog models with make/make_name/search filters
func (cc *CatalogController) ListModels(c *fiber.Ctx) error {
	query := cc.DB.Order("name ASC")

	if makeID := c.Query("make"); makeID != "" {
		id, err := strconv.ParseUint(makeID, 10, 32)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid make ID"})
		}
		query = query.Where("make_id = ?", id)
	}
	if makeName := strings.TrimSpace(c.Query("make_name")); makeName != "" {
		query = query.Where("make_id IN (?)",
			cc.DB.Model(&models.VehicleMake{}).Select("id").Where("LOWER(name) = ?", strings.ToLower(makeName)))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var modelNames []models.VehicleModelName
	if err := query.Find(&modelNames).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load models"})
	}
	return c.JSON(modelNames)
}

// CreateModel registers a model under an existing make
func (cc *CatalogController) CreateModel(c *fiber.Ctx) error {
	if requireInspectorOrAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	var req ModelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"name": "This field may not be blank."}})
	}

	var makeEntry models.VehicleMake
	if err := cc.DB.First(&makeEntry, req.Make).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"make": "Invalid make ID"}})
	}

	var modelEntry models.VehicleModelName
	if err := cc.DB.Where("make_id = ? AND name = ?", makeEntry.ID, name).First(&modelEntry).Error; err == nil {
		return c.JSON(modelEntry)
	}
	modelEntry = models.VehicleModelName{MakeID: makeEntry.ID, Name: name}
	if err := cc.DB.Create(&modelEntry).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create model"})
	}
	return c.Status(201).JSON(modelEntry)
}
