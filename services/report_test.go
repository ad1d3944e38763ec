package services

import (
	"testing"

	"fleetportal-backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func reportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	db.AutoMigrate(
		&models.InspectionCategory{}, &models.ChecklistItem{},
		&models.Inspection{}, &models.InspectionItemResponse{},
		&models.InspectionPhoto{}, &models.CustomerReport{},
	)
	return db
}

func seedResponses(t *testing.T, db *gorm.DB, inspection *models.Inspection, results ...models.InspectionItemResponse) {
	category := models.InspectionCategory{Code: "cat", Name: "Category", DisplayOrder: 1}
	assert.NoError(t, db.Create(&category).Error)

	for i := range results {
		item := models.ChecklistItem{
			CategoryID: category.ID,
			Code:       results[i].Notes + "-" + string(rune('a'+i)),
			Title:      "Check " + string(rune('A'+i)),
			IsActive:   true,
		}
		assert.NoError(t, db.Create(&item).Error)
		results[i].InspectionID = inspection.ID
		results[i].ChecklistItemID = item.ID
		assert.NoError(t, db.Create(&results[i]).Error)
	}
}

func TestGenerateCustomerReportClean(t *testing.T) {
	db := reportTestDB(t)
	inspection := models.Inspection{VehicleID: 1, CustomerID: 1, InspectorID: 1}
	assert.NoError(t, db.Create(&inspection).Error)

	seedResponses(t, db, &inspection,
		models.InspectionItemResponse{Result: models.ResultPass, Severity: 1},
		models.InspectionItemResponse{Result: models.ResultNA, Severity: 1},
	)

	report, err := GenerateCustomerReport(db, &inspection)
	assert.NoError(t, err)
	assert.Equal(t, "No critical issues identified across 2 checklist items.", report.Summary)
	assert.Equal(t, "Vehicle is cleared for continued operation.", report.RecommendedActions)
	assert.Nil(t, report.PublishedAt)
}

func TestGenerateCustomerReportWithFailures(t *testing.T) {
	db := reportTestDB(t)
	inspection := models.Inspection{VehicleID: 1, CustomerID: 1, InspectorID: 1}
	assert.NoError(t, db.Create(&inspection).Error)

	seedResponses(t, db, &inspection,
		models.InspectionItemResponse{Result: models.ResultFail, Severity: 4, Notes: "leaking"},
		models.InspectionItemResponse{Result: models.ResultPass, Severity: 1},
		models.InspectionItemResponse{Result: models.ResultFail, Severity: 2},
	)

	report, err := GenerateCustomerReport(db, &inspection)
	assert.NoError(t, err)
	assert.Contains(t, report.Summary, "2 critical issue(s) identified:")
	assert.Contains(t, report.Summary, "(severity 4/5): leaking")
	assert.Contains(t, report.Summary, "(severity 2/5)")
	assert.Contains(t, report.RecommendedActions, "Schedule corrective maintenance")
}

func TestGenerateCustomerReportIsIdempotent(t *testing.T) {
	db := reportTestDB(t)
	inspection := models.Inspection{VehicleID: 1, CustomerID: 1, InspectorID: 1}
	assert.NoError(t, db.Create(&inspection).Error)

	first, err := GenerateCustomerReport(db, &inspection)
	assert.NoError(t, err)

	// Add a failing response and regenerate; the same row is rewritten
	seedResponses(t, db, &inspection,
		models.InspectionItemResponse{Result: models.ResultFail, Severity: 5, Notes: "broken"},
	)
	second, err := GenerateCustomerReport(db, &inspection)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Contains(t, second.Summary, "1 critical issue(s) identified:")

	var count int64
	db.Model(&models.CustomerReport{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
