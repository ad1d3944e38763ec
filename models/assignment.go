package models

import (
	"time"

	"gorm.io/gorm"
)

// VehicleAssignment links a vehicle, an inspector, and the admin who scheduled the work
type VehicleAssignment struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	VehicleID    uint       `json:"vehicle" gorm:"not null"`
	InspectorID  uint       `json:"inspector" gorm:"not null"`
	AssignedByID uint       `json:"assigned_by" gorm:"not null"`
	ScheduledFor *time.Time `json:"scheduled_for"`
	Status       string     `json:"status" gorm:"not null;default:'assigned';size:20"` // 'assigned', 'in_progress', 'completed'
	Remarks      string     `json:"remarks" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Vehicle    Vehicle          `json:"vehicle_detail" gorm:"foreignKey:VehicleID"`
	Inspector  InspectorProfile `json:"inspector_detail" gorm:"foreignKey:InspectorID"`
	AssignedBy PortalUser       `json:"assigned_by_detail" gorm:"foreignKey:AssignedByID"`
}

// Assignment statuses
const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

// BeforeCreate hook for VehicleAssignment
func (a *VehicleAssignment) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for VehicleAssignment
func (a *VehicleAssignment) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}
