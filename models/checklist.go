package models

import (
	"time"

	"gorm.io/gorm"
)

// InspectionCategory groups checklist items into an ordered presentation section
type InspectionCategory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Code         string    `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Name         string    `json:"name" gorm:"not null;size:120"`
	Description  string    `json:"description" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Items []ChecklistItem `json:"items" gorm:"foreignKey:CategoryID"`
}

// ChecklistItem is one inspectable point inside a category.
// IsActive hides an item from clients without deleting historic responses.
type ChecklistItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CategoryID    uint      `json:"category" gorm:"not null"`
	Code          string    `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Title         string    `json:"title" gorm:"not null;size:200"`
	Description   string    `json:"description" gorm:"type:text"`
	RequiresPhoto bool      `json:"requires_photo" gorm:"default:false"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Category InspectionCategory `json:"-" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate hook for InspectionCategory
func (c *InspectionCategory) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for InspectionCategory
func (c *InspectionCategory) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for ChecklistItem
func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for ChecklistItem
func (i *ChecklistItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
