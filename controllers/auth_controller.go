package controllers

import (
	"strings"

	"fleetportal-backend/models"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles token authentication
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates a new AuthController instance
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// TokenRequest accepts a username or an email in the username field
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the issued token and the caller's portal profile
type TokenResponse struct {
	Token   string             `json:"token"`
	Profile *models.PortalUser `json:"profile"`
}

// ObtainToken validates credentials and issues a JWT
func (ac *AuthController) ObtainToken(c *fiber.Ctx) error {
	var req TokenRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": `Must include "username" and "password".`,
		})
	}

	var user models.User
	err := ac.DB.Where("username = ?", req.Username).First(&user).Error
	if err != nil && strings.Contains(req.Username, "@") {
		// Fallback: try email -> account mapping
		err = ac.DB.Where("LOWER(email) = ?", strings.ToLower(req.Username)).First(&user).Error
	}
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Unable to log in with provided credentials.",
		})
	}

	if !user.IsActive {
		return c.Status(400).JSON(fiber.Map{
			"error": "User account is disabled.",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	profile := models.LoadPortalProfile(ac.DB, user.ID)
	return c.JSON(TokenResponse{Token: token, Profile: profile})
}
