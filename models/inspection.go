package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inspection is the aggregate root for one checklist walk-through of a vehicle.
// Customer is denormalized from the vehicle at creation time and never accepted
// from the caller.
type Inspection struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Reference       string     `json:"reference" gorm:"uniqueIndex;not null;size:20"`
	AssignmentID    *uint      `json:"assignment"`
	VehicleID       uint       `json:"vehicle" gorm:"not null"`
	CustomerID      uint       `json:"customer" gorm:"not null"`
	InspectorID     uint       `json:"inspector" gorm:"not null"`
	Status          string     `json:"status" gorm:"not null;default:'draft';size:20"` // 'draft', 'in_progress', 'submitted', 'approved'
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	OdometerReading int        `json:"odometer_reading" gorm:"default:0"`
	GeneralNotes    string     `json:"general_notes" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Assignment     *VehicleAssignment       `json:"assignment_detail,omitempty" gorm:"foreignKey:AssignmentID"`
	Vehicle        Vehicle                  `json:"vehicle_detail" gorm:"foreignKey:VehicleID"`
	Customer       Customer                 `json:"customer_detail" gorm:"foreignKey:CustomerID"`
	Inspector      InspectorProfile         `json:"inspector_detail" gorm:"foreignKey:InspectorID"`
	ItemResponses  []InspectionItemResponse `json:"item_responses" gorm:"foreignKey:InspectionID"`
	CustomerReport *CustomerReport          `json:"customer_report,omitempty" gorm:"foreignKey:InspectionID"`
}

// InspectionItemResponse records the outcome for a single checklist item
type InspectionItemResponse struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	InspectionID    uint      `json:"inspection_id" gorm:"not null"`
	ChecklistItemID uint      `json:"checklist_item" gorm:"not null"`
	Result          string    `json:"result" gorm:"not null;default:'pass';size:20"` // 'pass', 'fail', 'not_applicable'
	Severity        int       `json:"severity" gorm:"default:1"`                     // clamped to [1,5]
	Notes           string    `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	ChecklistItem ChecklistItem     `json:"checklist_item_detail" gorm:"foreignKey:ChecklistItemID"`
	Photos        []InspectionPhoto `json:"photos" gorm:"foreignKey:ResponseID"`
}

// InspectionPhoto stores evidence attached to an item response
type InspectionPhoto struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ResponseID uint      `json:"response_id" gorm:"not null"`
	Image      string    `json:"image" gorm:"not null;size:500"` // stored file path or external URL
	Caption    string    `json:"caption" gorm:"size:255;default:''"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerReport is the customer-facing summary, one-to-one with an inspection
type CustomerReport struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	InspectionID       uint       `json:"inspection_id" gorm:"uniqueIndex;not null"`
	Summary            string     `json:"summary" gorm:"type:text"`
	RecommendedActions string     `json:"recommended_actions" gorm:"type:text"`
	PublishedAt        *time.Time `json:"published_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Inspection statuses
const (
	InspectionStatusDraft      = "draft"
	InspectionStatusInProgress = "in_progress"
	InspectionStatusSubmitted  = "submitted"
	InspectionStatusApproved   = "approved"
)

// Item response results
const (
	ResultPass = "pass"
	ResultFail = "fail"
	ResultNA   = "not_applicable"
)

// BeforeCreate hook for Inspection sets timestamps and a unique reference
func (i *Inspection) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	if i.Reference == "" {
		i.Reference = "INS-" + strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
	}
	return nil
}

// BeforeUpdate hook for Inspection
func (i *Inspection) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for InspectionItemResponse
func (r *InspectionItemResponse) BeforeCreate(tx *gorm.DB) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for InspectionItemResponse
func (r *InspectionItemResponse) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for InspectionPhoto
func (p *InspectionPhoto) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	return nil
}

// BeforeCreate hook for CustomerReport
func (r *CustomerReport) BeforeCreate(tx *gorm.DB) error {
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for CustomerReport
func (r *CustomerReport) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}
