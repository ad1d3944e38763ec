package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fleetportal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestNotificationSummary(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin, adminToken := createTestAdmin(db, "notifadmin")
	inspector, inspectorToken := createTestInspector(db, "notifinspector")
	customer, _ := createTestCustomer(db, "notifcustomer")
	vehicle := createTestVehicle(db, customer.ID, "1XKWD40X1EJ195555")

	db.Create(&models.Inspection{
		VehicleID:   vehicle.ID,
		CustomerID:  customer.ID,
		InspectorID: inspector.ID,
		Status:      models.InspectionStatusSubmitted,
	})
	db.Create(&models.Inspection{
		VehicleID:   vehicle.ID,
		CustomerID:  customer.ID,
		InspectorID: inspector.ID,
		Status:      models.InspectionStatusDraft,
	})
	db.Create(&models.VehicleAssignment{
		VehicleID:    vehicle.ID,
		InspectorID:  inspector.ID,
		AssignedByID: admin.ID,
		Status:       models.AssignmentStatusAssigned,
	})
	db.Create(&models.VehicleAssignment{
		VehicleID:    vehicle.ID,
		InspectorID:  inspector.ID,
		AssignedByID: admin.ID,
		Status:       models.AssignmentStatusCompleted,
	})

	req := httptest.NewRequest("GET", "/api/notifications/summary", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var summary map[string]int64
	json.NewDecoder(resp.Body).Decode(&summary)
	assert.Equal(t, int64(1), summary["inspections_pending_review"])
	assert.Equal(t, int64(1), summary["open_assignments"])

	// Non-admins are rejected
	req = httptest.NewRequest("GET", "/api/notifications/summary", nil)
	req.Header.Set("Authorization", "Bearer "+inspectorToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
