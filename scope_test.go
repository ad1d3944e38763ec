package main

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"fleetportal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestVehicleScoping(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	admin, adminToken := createTestAdmin(db, "scopeadmin")
	inspector, inspectorToken := createTestInspector(db, "scopeinspector")
	customerA, customerAToken := createTestCustomer(db, "scopecustomera")
	customerB, _ := createTestCustomer(db, "scopecustomerb")

	vehicleA := createTestVehicle(db, customerA.ID, "1XKWD40X1EJ191111")
	createTestVehicle(db, customerA.ID, "1XKWD40X1EJ192222")
	createTestVehicle(db, customerB.ID, "1XKWD40X1EJ193333")

	// Inspector is assigned to one of customer A's vehicles only
	db.Create(&models.VehicleAssignment{
		VehicleID:    vehicleA.ID,
		InspectorID:  inspector.ID,
		AssignedByID: admin.ID,
		Status:       models.AssignmentStatusAssigned,
	})

	listVehicles := func(token string) []models.Vehicle {
		req := httptest.NewRequest("GET", "/api/vehicles/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		var vehicles []models.Vehicle
		json.NewDecoder(resp.Body).Decode(&vehicles)
		return vehicles
	}

	assert.Len(t, listVehicles(adminToken), 3)
	assert.Len(t, listVehicles(customerAToken), 2)

	visible := listVehicles(inspectorToken)
	assert.Len(t, visible, 1)
	assert.Equal(t, vehicleA.ID, visible[0].ID)
}

func TestInspectionScoping(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, adminToken := createTestAdmin(db, "insadmin")
	inspectorA, inspectorAToken := createTestInspector(db, "insinspectora")
	_, inspectorBToken := createTestInspector(db, "insinspectorb")
	customer, customerToken := createTestCustomer(db, "inscustomer")
	_, otherCustomerToken := createTestCustomer(db, "insothercustomer")

	vehicle := createTestVehicle(db, customer.ID, "1XKWD40X1EJ194444")

	inspection := models.Inspection{
		VehicleID:   vehicle.ID,
		CustomerID:  customer.ID,
		InspectorID: inspectorA.ID,
		Status:      models.InspectionStatusDraft,
	}
	db.Create(&inspection)

	get := func(token string) int {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/inspections/%d", inspection.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, get(adminToken))
	assert.Equal(t, 200, get(inspectorAToken))
	assert.Equal(t, 200, get(customerToken))
	// Outside the assignment and ownership chain the record does not exist
	assert.Equal(t, 404, get(inspectorBToken))
	assert.Equal(t, 404, get(otherCustomerToken))
}

func TestCustomerManagementIsAdminOnly(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, adminToken := createTestAdmin(db, "mgmtadmin")
	_, inspectorToken := createTestInspector(db, "mgmtinspector")
	_, customerToken := createTestCustomer(db, "mgmtcustomer")

	list := func(token string) int {
		req := httptest.NewRequest("GET", "/api/customers/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, list(adminToken))
	assert.Equal(t, 403, list(inspectorToken))
	assert.Equal(t, 403, list(customerToken))
}

func TestChecklistIsPublic(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)
	createTestChecklistItem(db, "public_item", false)

	req := httptest.NewRequest("GET", "/api/categories/", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var categories []models.InspectionCategory
	json.NewDecoder(resp.Body).Decode(&categories)
	assert.Len(t, categories, 1)
	assert.Len(t, categories[0].Items, 1)

	req = httptest.NewRequest("GET", "/api/checklist-items/", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
