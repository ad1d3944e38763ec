package services

import (
	"fleetportal-backend/models"

	"gorm.io/gorm"
)

// Role-based query scoping. Applied before any other filter: admins see
// everything, inspectors see what they are assigned to, customers see what
// they own, and a caller without a portal profile gets an empty result set
// rather than an error.

// ScopeVehicles narrows a vehicle query to the caller's role
func ScopeVehicles(db *gorm.DB, query *gorm.DB, profile *models.PortalUser) *gorm.DB {
	if profile == nil {
		return query.Where("1 = 0")
	}
	if profile.Role == models.RoleAdmin {
		return query
	}
	if customer := profile.CustomerProfile(db); customer != nil {
		return query.Where("customer_id = ?", customer.ID)
	}
	if inspector := profile.InspectorProfileFor(db); inspector != nil {
		assigned := db.Model(&models.VehicleAssignment{}).
			Select("vehicle_id").
			Where("inspector_id = ?", inspector.ID)
		return query.Where("id IN (?)", assigned)
	}
	return query.Where("1 = 0")
}

// ScopeAssignments narrows an assignment query to the caller's role
func ScopeAssignments(db *gorm.DB, query *gorm.DB, profile *models.PortalUser) *gorm.DB {
	if profile == nil {
		return query.Where("1 = 0")
	}
	if profile.Role == models.RoleAdmin {
		return query
	}
	if inspector := profile.InspectorProfileFor(db); inspector != nil {
		return query.Where("inspector_id = ?", inspector.ID)
	}
	return query.Where("1 = 0")
}

// ScopeInspections narrows an inspection query to the caller's role
func ScopeInspections(db *gorm.DB, query *gorm.DB, profile *models.PortalUser) *gorm.DB {
	if profile == nil {
		return query.Where("1 = 0")
	}
	if profile.Role == models.RoleAdmin {
		return query
	}
	if inspector := profile.InspectorProfileFor(db); inspector != nil {
		return query.Where("inspector_id = ?", inspector.ID)
	}
	if customer := profile.CustomerProfile(db); customer != nil {
		return query.Where("customer_id = ?", customer.ID)
	}
	return query.Where("1 = 0")
}
