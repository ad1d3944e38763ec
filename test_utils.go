package main

import (
	"os"
	"path/filepath"

	"fleetportal-backend/controllers"
	"fleetportal-backend/models"
	"fleetportal-backend/routes"
	"fleetportal-backend/services"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(
		&models.User{}, &models.PortalUser{},
		&models.Customer{}, &models.InspectorProfile{},
		&models.Vehicle{}, &models.VehicleMake{}, &models.VehicleModelName{},
		&models.VehicleAssignment{},
		&models.InspectionCategory{}, &models.ChecklistItem{},
		&models.Inspection{}, &models.InspectionItemResponse{},
		&models.InspectionPhoto{}, &models.CustomerReport{},
	)
	return db
}

// createTestApp wires the full route surface against the given database
func createTestApp(db *gorm.DB) *fiber.App {
	return createTestAppWithOptions(db, services.InspectionOptions{
		UploadDir: filepath.Join(os.TempDir(), "fleetportal-test-uploads"),
	})
}

// createTestAppWithOptions wires the app with custom pipeline options
func createTestAppWithOptions(db *gorm.DB, opts services.InspectionOptions) *fiber.App {
	app := fiber.New()

	inspectionService := services.NewInspectionService(db, zap.NewNop(), opts)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupCustomerRoutes(app, controllers.NewCustomerController(db))
	routes.SetupInspectorRoutes(app, controllers.NewInspectorController(db))
	routes.SetupVehicleRoutes(app, controllers.NewVehicleController(db))
	routes.SetupCatalogRoutes(app, controllers.NewCatalogController(db))
	routes.SetupAssignmentRoutes(app, controllers.NewAssignmentController(db))
	routes.SetupChecklistRoutes(app, controllers.NewChecklistController(db))
	routes.SetupInspectionRoutes(app, controllers.NewInspectionController(db, inspectionService, zap.NewNop()))
	routes.SetupNotificationRoutes(app, controllers.NewNotificationController(db))

	return app
}

// createTestAccount creates a user with a portal profile and returns the
// profile together with a real JWT for the account
func createTestAccount(db *gorm.DB, username, role string) (*models.PortalUser, string) {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	db.Create(&user)

	profile := models.PortalUser{UserID: user.ID, Role: role}
	db.Create(&profile)
	profile.User = user

	token, _ := utils.GenerateJWT(user.ID, user.Email)
	return &profile, token
}

// createTestAdmin creates an admin account
func createTestAdmin(db *gorm.DB, username string) (*models.PortalUser, string) {
	return createTestAccount(db, username, models.RoleAdmin)
}

// createTestInspector creates an inspector account with its role profile
func createTestInspector(db *gorm.DB, username string) (*models.InspectorProfile, string) {
	profile, token := createTestAccount(db, username, models.RoleInspector)
	inspector := models.InspectorProfile{
		ProfileID:           profile.ID,
		BadgeID:             "BADGE-" + username,
		IsActive:            true,
		MaxDailyInspections: 8,
	}
	db.Create(&inspector)
	return &inspector, token
}

// createTestCustomer creates a customer account with its role profile
func createTestCustomer(db *gorm.DB, username string) (*models.Customer, string) {
	profile, token := createTestAccount(db, username, models.RoleCustomer)
	customer := models.Customer{
		ProfileID: profile.ID,
		LegalName: username + " Logistics LLC",
	}
	db.Create(&customer)
	return &customer, token
}

// createTestVehicle creates a vehicle for the given customer
func createTestVehicle(db *gorm.DB, customerID uint, vin string) *models.Vehicle {
	vehicle := models.Vehicle{
		CustomerID:   customerID,
		VIN:          vin,
		LicensePlate: "TST-" + vin[:4],
		Make:         "Freightliner",
		Model:        "Cascadia",
		Year:         2021,
		VehicleType:  "tractor",
	}
	db.Create(&vehicle)
	return &vehicle
}

// createTestChecklistItem creates a category (get-or-create) and an item in it
func createTestChecklistItem(db *gorm.DB, code string, requiresPhoto bool) *models.ChecklistItem {
	var category models.InspectionCategory
	err := db.Where("code = ?", "test_category").First(&category).Error
	if err != nil {
		category = models.InspectionCategory{Code: "test_category", Name: "Test Category", DisplayOrder: 1}
		db.Create(&category)
	}
	item := models.ChecklistItem{
		CategoryID:    category.ID,
		Code:          code,
		Title:         "Item " + code,
		RequiresPhoto: requiresPhoto,
		IsActive:      true,
	}
	db.Create(&item)
	return &item
}
