package controllers

import (
	"errors"

	"fleetportal-backend/models"
	"fleetportal-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentProfile resolves the caller's portal profile from the authenticated
// user id placed in Locals by the auth middleware. Nil when the account has
// no profile; scoped queries then return empty sets rather than errors.
func currentProfile(c *fiber.Ctx, db *gorm.DB) *models.PortalUser {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil
	}
	return models.LoadPortalProfile(db, userID)
}

// requireAdmin returns the caller's profile when it carries the admin role
func requireAdmin(c *fiber.Ctx, db *gorm.DB) *models.PortalUser {
	profile := currentProfile(c, db)
	if profile == nil || profile.Role != models.RoleAdmin {
		return nil
	}
	return profile
}

// requireInspectorOrAdmin returns the caller's profile for inspector/admin roles
func requireInspectorOrAdmin(c *fiber.Ctx, db *gorm.DB) *models.PortalUser {
	profile := currentProfile(c, db)
	if profile == nil {
		return nil
	}
	if profile.Role != models.RoleAdmin && profile.Role != models.RoleInspector {
		return nil
	}
	return profile
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(403).JSON(fiber.Map{
		"error": "You do not have permission to perform this action.",
	})
}

// fail converts a pipeline error into the right HTTP shape: field-scoped 400
// for validation errors, 500 carrying the error text otherwise.
func fail(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(400).JSON(fiber.Map{"errors": verr.Fields})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
