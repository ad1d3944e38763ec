package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a fleet owner serviced by the portal
type Customer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProfileID    uint      `json:"profile_id" gorm:"uniqueIndex;not null"`
	LegalName    string    `json:"legal_name" gorm:"not null;size:255"`
	ContactEmail string    `json:"contact_email" gorm:"size:255;default:''"`
	ContactPhone string    `json:"contact_phone" gorm:"size:30;default:''"`
	AddressLine1 string    `json:"address_line1" gorm:"size:255;default:''"`
	AddressLine2 string    `json:"address_line2" gorm:"size:255;default:''"`
	City         string    `json:"city" gorm:"size:100;default:''"`
	State        string    `json:"state" gorm:"size:100;default:''"`
	PostalCode   string    `json:"postal_code" gorm:"size:20;default:''"`
	Country      string    `json:"country" gorm:"size:100;default:''"`
	Notes        string    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Profile PortalUser `json:"profile" gorm:"foreignKey:ProfileID"`
}

// BeforeCreate hook for Customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for Customer
func (c *Customer) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
