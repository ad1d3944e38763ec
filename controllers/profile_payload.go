package controllers

import (
	"strings"

	"fleetportal-backend/models"
	"fleetportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPayload is the nested account block inside customer/inspector requests
type UserPayload struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ProfilePayload is the nested portal profile block
type ProfilePayload struct {
	User         UserPayload `json:"user"`
	PhoneNumber  string      `json:"phone_number"`
	Organization string      `json:"organization"`
	JobTitle     string      `json:"job_title"`
}

// createPortalAccount creates the account and role profile rows for a nested
// payload. A missing password gets a random one; the credential flow issues
// tokens, it never echoes passwords back.
func createPortalAccount(tx *gorm.DB, payload ProfilePayload, role string) (*models.PortalUser, error) {
	if payload.User.Username == "" {
		return nil, fiber.NewError(400, "Username is required")
	}
	if payload.User.Email == "" {
		return nil, fiber.NewError(400, "Email is required")
	}

	password := payload.User.Password
	if password == "" {
		password = uuid.NewString()
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     payload.User.Username,
		FirstName:    payload.User.FirstName,
		LastName:     payload.User.LastName,
		Email:        strings.ToLower(payload.User.Email),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}

	profile := models.PortalUser{
		UserID:       user.ID,
		Role:         role,
		PhoneNumber:  payload.PhoneNumber,
		Organization: payload.Organization,
		JobTitle:     payload.JobTitle,
	}
	if err := tx.Create(&profile).Error; err != nil {
		return nil, err
	}
	profile.User = user
	return &profile, nil
}

// updatePortalAccount applies the nested profile block to existing rows
func updatePortalAccount(tx *gorm.DB, profile *models.PortalUser, payload ProfilePayload) error {
	var user models.User
	if err := tx.First(&user, profile.UserID).Error; err != nil {
		return err
	}
	if payload.User.Username != "" {
		user.Username = payload.User.Username
	}
	if payload.User.Email != "" {
		user.Email = strings.ToLower(payload.User.Email)
	}
	if payload.User.FirstName != "" {
		user.FirstName = payload.User.FirstName
	}
	if payload.User.LastName != "" {
		user.LastName = payload.User.LastName
	}
	if payload.User.Password != "" {
		hash, err := utils.HashPassword(payload.User.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if err := tx.Save(&user).Error; err != nil {
		return err
	}

	if payload.PhoneNumber != "" {
		profile.PhoneNumber = payload.PhoneNumber
	}
	if payload.Organization != "" {
		profile.Organization = payload.Organization
	}
	if payload.JobTitle != "" {
		profile.JobTitle = payload.JobTitle
	}
	if err := tx.Save(profile).Error; err != nil {
		return err
	}
	profile.User = user
	return nil
}
