package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle represents a fleet vehicle owned by a customer
type Vehicle struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	CustomerID        uint      `json:"customer" gorm:"not null"`
	VIN               string    `json:"vin" gorm:"uniqueIndex;not null;size:17"`
	LicensePlate      string    `json:"license_plate" gorm:"not null;size:20"`
	Make              string    `json:"make" gorm:"size:100;default:''"`
	Model             string    `json:"model" gorm:"size:100;default:''"`
	Year              int       `json:"year" gorm:"default:0"`
	VehicleType       string    `json:"vehicle_type" gorm:"size:50;default:''"`
	AxleConfiguration string    `json:"axle_configuration" gorm:"size:20;default:''"`
	Mileage           int       `json:"mileage" gorm:"default:0"`
	Notes             string    `json:"notes" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Customer Customer `json:"customer_detail" gorm:"foreignKey:CustomerID"`
}

// VehicleMake is reference catalog data, auto-populated from free-text vehicle entries
type VehicleMake struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Models []VehicleModelName `json:"models" gorm:"foreignKey:MakeID"`
}

// VehicleModelName is a catalog model entry under a make
type VehicleModelName struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MakeID    uint      `json:"make" gorm:"not null;uniqueIndex:idx_make_model"`
	Name      string    `json:"name" gorm:"not null;size:100;uniqueIndex:idx_make_model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	MakeRef VehicleMake `json:"-" gorm:"foreignKey:MakeID"`
}

// BeforeCreate hook for Vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for Vehicle
func (v *Vehicle) BeforeUpdate(tx *gorm.DB) error {
	v.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for VehicleMake
func (m *VehicleMake) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for VehicleMake
func (m *VehicleMake) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate hook for VehicleModelName
func (m *VehicleModelName) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate hook for VehicleModelName
func (m *VehicleModelName) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
