package main

import (
	"os"
	"time"

	"fleetportal-backend/controllers"
	"fleetportal-backend/models"
	"fleetportal-backend/routes"
	"fleetportal-backend/services"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	// Database
	db, err := models.InitDB()
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Migrations
	db.AutoMigrate(
		&models.User{}, &models.PortalUser{},
		&models.Customer{}, &models.InspectorProfile{},
		&models.Vehicle{}, &models.VehicleMake{}, &models.VehicleModelName{},
		&models.VehicleAssignment{},
		&models.InspectionCategory{}, &models.ChecklistItem{},
		&models.Inspection{}, &models.InspectionItemResponse{},
		&models.InspectionPhoto{}, &models.CustomerReport{},
	)

	// Reference data
	if err := services.SeedChecklistStructure(db, zlog); err != nil {
		zlog.Fatal("failed to seed checklist structure", zap.Error(err))
	}
	bootstrapAdmin(db, zlog)

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Services
	inspectionService := services.NewInspectionService(db, zlog, services.InspectionOptions{
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		StrictResponses: os.Getenv("STRICT_ITEM_RESPONSES") == "true",
	})

	// Controllers
	authController := controllers.NewAuthController(db)
	customerController := controllers.NewCustomerController(db)
	inspectorController := controllers.NewInspectorController(db)
	vehicleController := controllers.NewVehicleController(db)
	catalogController := controllers.NewCatalogController(db)
	assignmentController := controllers.NewAssignmentController(db)
	checklistController := controllers.NewChecklistController(db)
	inspectionController := controllers.NewInspectionController(db, inspectionService, zlog)
	notificationController := controllers.NewNotificationController(db)

	// Routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupCustomerRoutes(app, customerController)
	routes.SetupInspectorRoutes(app, inspectorController)
	routes.SetupVehicleRoutes(app, vehicleController)
	routes.SetupCatalogRoutes(app, catalogController)
	routes.SetupAssignmentRoutes(app, assignmentController)
	routes.SetupChecklistRoutes(app, checklistController)
	routes.SetupInspectionRoutes(app, inspectionController)
	routes.SetupNotificationRoutes(app, notificationController)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Fleet Portal Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zlog.Info("server starting", zap.String("port", port))
	zlog.Fatal("server stopped", zap.Error(app.Listen(":"+port)))
}

// bootstrapAdmin creates the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when no admin profile exists yet.
func bootstrapAdmin(db *gorm.DB, zlog *zap.Logger) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	var count int64
	db.Model(&models.PortalUser{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		zlog.Error("failed to hash admin password", zap.Error(err))
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:     username,
			Email:        username + "@localhost",
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.PortalUser{UserID: user.ID, Role: models.RoleAdmin}).Error
	})
	if err != nil {
		zlog.Error("failed to bootstrap admin account", zap.Error(err))
		return
	}
	zlog.Info("bootstrapped admin account", zap.String("username", username))
}
