package models

import (
	"time"

	"gorm.io/gorm"
)

// InspectorProfile represents an inspector working vehicle assignments
type InspectorProfile struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	ProfileID           uint      `json:"profile_id" gorm:"uniqueIndex;not null"`
	BadgeID             string    `json:"badge_id" gorm:"uniqueIndex;not null;size:50"`
	Certifications      string    `json:"certifications" gorm:"type:text"`
	IsActive            bool      `json:"is_active" gorm:"default:true"`
	MaxDailyInspections int       `json:"max_daily_inspections" gorm:"default:8"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relations
	Profile PortalUser `json:"profile" gorm:"foreignKey:ProfileID"`
}

// BeforeCreate hook for InspectorProfile
func (i *InspectorProfile) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for InspectorProfile
func (i *InspectorProfile) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
