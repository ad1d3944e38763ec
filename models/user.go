package models

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// User represents a login account in the portal
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	FirstName    string    `json:"first_name" gorm:"default:''"`
	LastName     string    `json:"last_name" gorm:"default:''"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // Hidden from JSON
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PortalUser represents a role-tagged profile layered over a base account
type PortalUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role         string    `json:"role" gorm:"not null;size:20"` // 'admin', 'inspector', 'customer'
	PhoneNumber  string    `json:"phone_number" gorm:"size:30;default:''"`
	Organization string    `json:"organization" gorm:"size:120;default:''"`
	JobTitle     string    `json:"job_title" gorm:"size:120;default:''"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Portal roles
const (
	RoleAdmin     = "admin"
	RoleInspector = "inspector"
	RoleCustomer  = "customer"
)

// InitDB initializes the database connection
func InitDB() (*gorm.DB, error) {
	// DATABASE_URL selects PostgreSQL for production deployments
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// SQLite for local development
	db, err := gorm.Open(sqlite.Open("fleetportal.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// LoadPortalProfile resolves the portal profile for a user ID.
// Returns nil (not an error) when the account has no profile, so callers
// can scope queries down to an empty result set instead of failing.
func LoadPortalProfile(db *gorm.DB, userID uint) *PortalUser {
	var profile PortalUser
	if err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil
	}
	return &profile
}

// CustomerProfile returns the customer record owned by this portal user, if any.
func (p *PortalUser) CustomerProfile(db *gorm.DB) *Customer {
	if p == nil {
		return nil
	}
	var customer Customer
	if err := db.Where("profile_id = ?", p.ID).First(&customer).Error; err != nil {
		return nil
	}
	return &customer
}

// InspectorProfileFor returns the inspector record owned by this portal user, if any.
func (p *PortalUser) InspectorProfileFor(db *gorm.DB) *InspectorProfile {
	if p == nil {
		return nil
	}
	var inspector InspectorProfile
	if err := db.Where("profile_id = ?", p.ID).First(&inspector).Error; err != nil {
		return nil
	}
	return &inspector
}

// BeforeCreate hook sets creation timestamps
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook refreshes the update timestamp
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for PortalUser
func (p *PortalUser) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for PortalUser
func (p *PortalUser) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
