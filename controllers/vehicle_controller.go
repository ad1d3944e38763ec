package controllers

import (
	"strconv"
	"strings"

	"fleetportal-backend/models"
	"fleetportal-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleController handles fleet vehicles. Reads are role-scoped, creation
// is open to inspectors and admins, mutation beyond that is admin only.
type VehicleController struct {
	DB *gorm.DB
}

// NewVehicleController creates a new VehicleController instance
func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// VehicleRequest is the create/update payload
type VehicleRequest struct {
	Customer          uint   `json:"customer"`
	VIN               string `json:"vin"`
	LicensePlate      string `json:"license_plate"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	Year              int    `json:"year"`
	VehicleType       string `json:"vehicle_type"`
	AxleConfiguration string `json:"axle_configuration"`
	Mileage           int    `json:"mileage"`
	Notes             string `json:"notes"`
}

// ListVehicles returns the vehicles visible to the caller
func (vc *VehicleController) ListVehicles(c *fiber.Ctx) error {
	profile := currentProfile(c, vc.DB)

	var vehicles []models.Vehicle
	query := services.ScopeVehicles(vc.DB, vc.DB.Preload("Customer"), profile)
	if err := query.Find(&vehicles).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load vehicles"})
	}
	return c.JSON(vehicles)
}

// GetVehicle returns one vehicle when visible to the caller
func (vc *VehicleController) GetVehicle(c *fiber.Ctx) error {
	profile := currentProfile(c, vc.DB)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle models.Vehicle
	query := services.ScopeVehicles(vc.DB, vc.DB.Preload("Customer"), profile)
	if err := query.First(&vehicle, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	return c.JSON(vehicle)
}

// CreateVehicle creates a vehicle and feeds the make/model catalog
func (vc *VehicleController) CreateVehicle(c *fiber.Ctx) error {
	if requireInspectorOrAdmin(c, vc.DB) == nil {
		return forbidden(c)
	}

	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.VIN == "" || req.LicensePlate == "" {
		return c.Status(400).JSON(fiber.Map{"error": "VIN and license plate are required"})
	}

	var customer models.Customer
	if err := vc.DB.First(&customer, req.Customer).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"customer": "Invalid customer ID"}})
	}

	vehicle := models.Vehicle{
		CustomerID:        customer.ID,
		VIN:               req.VIN,
		LicensePlate:      req.LicensePlate,
		Make:              req.Make,
		Model:             req.Model,
		Year:              req.Year,
		VehicleType:       req.VehicleType,
		AxleConfiguration: req.AxleConfiguration,
		Mileage:           req.Mileage,
		Notes:             req.Notes,
	}

	err := vc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}
		return ensureMakeModelCatalog(tx, vehicle.Make, vehicle.Model)
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create vehicle"})
	}

	vehicle.Customer = customer
	return c.Status(201).JSON(vehicle)
}

// VehicleUpdateRequest uses pointers so an omitted field is left untouched
// while an explicit zero value (0 mileage, empty notes) is applied.
type VehicleUpdateRequest struct {
	Customer          *uint   `json:"customer"`
	VIN               *string `json:"vin"`
	LicensePlate      *string `json:"license_plate"`
	Make              *string `json:"make"`
	Model             *string `json:"model"`
	Year              *int    `json:"year"`
	VehicleType       *string `json:"vehicle_type"`
	AxleConfiguration *string `json:"axle_configuration"`
	Mileage           *int    `json:"mileage"`
	Notes             *string `json:"notes"`
}

// UpdateVehicle applies changes and refreshes the catalog
func (vc *VehicleController) UpdateVehicle(c *fiber.Ctx) error {
	if requireAdmin(c, vc.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle models.Vehicle
	if err := vc.DB.First(&vehicle, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	var req VehicleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Customer != nil {
		var customer models.Customer
		if err := vc.DB.First(&customer, *req.Customer).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"customer": "Invalid customer ID"}})
		}
		vehicle.CustomerID = customer.ID
	}
	if req.VIN != nil {
		if *req.VIN == "" {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"vin": "This field may not be blank."}})
		}
		vehicle.VIN = *req.VIN
	}
	if req.LicensePlate != nil {
		if *req.LicensePlate == "" {
			return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"license_plate": "This field may not be blank."}})
		}
		vehicle.LicensePlate = *req.LicensePlate
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.VehicleType != nil {
		vehicle.VehicleType = *req.VehicleType
	}
	if req.AxleConfiguration != nil {
		vehicle.AxleConfiguration = *req.AxleConfiguration
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.Notes != nil {
		vehicle.Notes = *req.Notes
	}

	err = vc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&vehicle).Error; err != nil {
			return err
		}
		return ensureMakeModelCatalog(tx, vehicle.Make, vehicle.Model)
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update vehicle"})
	}

	return c.JSON(vehicle)
}

// DeleteVehicle removes a vehicle record
func (vc *VehicleController) DeleteVehicle(c *fiber.Ctx) error {
	if requireAdmin(c, vc.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	if err := vc.DB.Delete(&models.Vehicle{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete vehicle"})
	}
	return c.SendStatus(204)
}

// ensureMakeModelCatalog upserts the catalog entries for a free-text
// make/model pair. Blank makes are ignored; blank models register only the make.
func ensureMakeModelCatalog(tx *gorm.DB, makeName, modelName string) error {
	makeName = strings.TrimSpace(makeName)
	modelName = strings.TrimSpace(modelName)
	if makeName == "" {
		return nil
	}

	var makeEntry models.VehicleMake
	err := tx.Where("name = ?", makeName).First(&makeEntry).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		makeEntry = models.VehicleMake{Name: makeName}
		if err := tx.Create(&makeEntry).Error; err != nil {
			return err
		}
	}

	if modelName == "" {
		return nil
	}
	var modelEntry models.VehicleModelName
	err = tx.Where("make_id = ? AND name = ?", makeEntry.ID, modelName).First(&modelEntry).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return tx.Create(&models.VehicleModelName{MakeID: makeEntry.ID, Name: modelName}).Error
}
