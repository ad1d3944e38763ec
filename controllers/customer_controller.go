package controllers

import (
	"strconv"

	"fleetportal-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CustomerController handles customer management; admin only
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController instance
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// CustomerRequest is the create/update payload with a nested account block
type CustomerRequest struct {
	Profile      ProfilePayload `json:"profile"`
	LegalName    string         `json:"legal_name"`
	ContactEmail string         `json:"contact_email"`
	ContactPhone string         `json:"contact_phone"`
	AddressLine1 string         `json:"address_line1"`
	AddressLine2 string         `json:"address_line2"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	PostalCode   string         `json:"postal_code"`
	Country      string         `json:"country"`
	Notes        string         `json:"notes"`
}

// ListCustomers returns all customers
func (cc *CustomerController) ListCustomers(c *fiber.Ctx) error {
	if requireAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	var customers []models.Customer
	if err := cc.DB.Preload("Profile").Preload("Profile.User").Find(&customers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load customers"})
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer
func (cc *CustomerController) GetCustomer(c *fiber.Ctx) error {
	if requireAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer models.Customer
	if err := cc.DB.Preload("Profile").Preload("Profile.User").First(&customer, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	return c.JSON(customer)
}

// CreateCustomer creates the customer with its nested account atomically
func (cc *CustomerController) CreateCustomer(c *fiber.Ctx) error {
	if requireAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.LegalName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Legal name is required"})
	}

	var customer models.Customer
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		profile, err := createPortalAccount(tx, req.Profile, models.RoleCustomer)
		if err != nil {
			return err
		}
		customer = models.Customer{
			ProfileID:    profile.ID,
			LegalName:    req.LegalName,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			PostalCode:   req.PostalCode,
			Country:      req.Country,
			Notes:        req.Notes,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		customer.Profile = *profile
		return nil
	})
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create customer"})
	}

	return c.Status(201).JSON(customer)
}

// CustomerUpdateRequest uses pointers so an omitted field is left untouched
// while an explicit empty string clears the field.
type CustomerUpdateRequest struct {
	Profile      ProfilePayload `json:"profile"`
	LegalName    *string        `json:"legal_name"`
	ContactEmail *string        `json:"contact_email"`
	ContactPhone *string        `json:"contact_phone"`
	AddressLine1 *string        `json:"address_line1"`
	AddressLine2 *string        `json:"address_line2"`
	City         *string        `json:"city"`
	State        *string        `json:"state"`
	PostalCode   *string        `json:"postal_code"`
	Country      *string        `json:"country"`
	Notes        *string        `json:"notes"`
}

// UpdateCustomer applies changes to the customer and its nested account
func (cc *CustomerController) UpdateCustomer(c *fiber.Ctx) error {
	if requireAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer models.Customer
	if err := cc.DB.Preload("Profile").First(&customer, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	var req CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.LegalName != nil && *req.LegalName == "" {
		return c.Status(400).JSON(fiber.Map{"errors": fiber.Map{"legal_name": "This field may not be blank."}})
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := updatePortalAccount(tx, &customer.Profile, req.Profile); err != nil {
			return err
		}
		if req.LegalName != nil {
			customer.LegalName = *req.LegalName
		}
		if req.ContactEmail != nil {
			customer.ContactEmail = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			customer.ContactPhone = *req.ContactPhone
		}
		if req.AddressLine1 != nil {
			customer.AddressLine1 = *req.AddressLine1
		}
		if req.AddressLine2 != nil {
			customer.AddressLine2 = *req.AddressLine2
		}
		if req.City != nil {
			customer.City = *req.City
		}
		if req.State != nil {
			customer.State = *req.State
		}
		if req.PostalCode != nil {
			customer.PostalCode = *req.PostalCode
		}
		if req.Country != nil {
			customer.Country = *req.Country
		}
		if req.Notes != nil {
			customer.Notes = *req.Notes
		}
		return tx.Save(&customer).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update customer"})
	}

	return c.JSON(customer)
}

// DeleteCustomer removes a customer record
func (cc *CustomerController) DeleteCustomer(c *fiber.Ctx) error {
	if requireAdmin(c, cc.DB) == nil {
		return forbidden(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := cc.DB.Delete(&models.Customer{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete customer"})
	}
	return c.SendStatus(204)
}
