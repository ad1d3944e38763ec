package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"fleetportal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCustomerWithNestedAccount(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)
	_, adminToken := createTestAdmin(db, "entadmin")

	payload := map[string]interface{}{
		"legal_name":    "Acme Haulage Inc",
		"contact_email": "ops@acmehaulage.test",
		"city":          "Denver",
		"profile": map[string]interface{}{
			"user": map[string]interface{}{
				"username": "acmeops",
				"email":    "Ops@AcmeHaulage.test",
				"password": "fleet-secret-1",
			},
			"phone_number": "+1-303-555-0101",
		},
	}
	jsonData, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/customers/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var created models.Customer
	json.NewDecoder(resp.Body).Decode(&created)
	assert.Equal(t, "Acme Haulage Inc", created.LegalName)
	assert.Equal(t, models.RoleCustomer, created.Profile.Role)
	assert.Equal(t, "acmeops", created.Profile.User.Username)
	assert.Equal(t, "ops@acmehaulage.test", created.Profile.User.Email)

	// The new account can log straight in
	loginData, _ := json.Marshal(map[string]string{"username": "acmeops", "password": "fleet-secret-1"})
	req = httptest.NewRequest("POST", "/api/auth/token", bytes.NewBuffer(loginData))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Missing username is rejected and nothing is persisted
	payload["profile"] = map[string]interface{}{"user": map[string]interface{}{"email": "x@y.test"}}
	payload["legal_name"] = "Broken LLC"
	jsonData, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/customers/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var count int64
	db.Model(&models.Customer{}).Where("legal_name = ?", "Broken LLC").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestVehicleCreateFeedsCatalog(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, inspectorToken := createTestInspector(db, "catinspector")
	customer, _ := createTestCustomer(db, "catcustomer")

	payload := map[string]interface{}{
		"customer":      customer.ID,
		"vin":           "3AKJHHDR0LSLV0001",
		"license_plate": "CO-44521",
		"make":          "Kenworth",
		"model":         "T680",
		"year":          2020,
		"vehicle_type":  "tractor",
	}
	jsonData, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/vehicles/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+inspectorToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var makeEntry models.VehicleMake
	assert.NoError(t, db.Where("name = ?", "Kenworth").First(&makeEntry).Error)
	var modelEntry models.VehicleModelName
	assert.NoError(t, db.Where("make_id = ? AND name = ?", makeEntry.ID, "T680").First(&modelEntry).Error)

	// A second vehicle with the same make/model does not duplicate catalog rows
	payload["vin"] = "3AKJHHDR0LSLV0002"
	payload["license_plate"] = "CO-44522"
	jsonData, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/vehicles/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+inspectorToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var makeCount, modelCount int64
	db.Model(&models.VehicleMake{}).Count(&makeCount)
	db.Model(&models.VehicleModelName{}).Count(&modelCount)
	assert.Equal(t, int64(1), makeCount)
	assert.Equal(t, int64(1), modelCount)

	// Catalog endpoints serve the collected entries
	req = httptest.NewRequest("GET", "/api/vehicle-makes/?search=ken", nil)
	req.Header.Set("Authorization", "Bearer "+inspectorToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var makes []models.VehicleMake
	json.NewDecoder(resp.Body).Decode(&makes)
	assert.Len(t, makes, 1)
	assert.Equal(t, "Kenworth", makes[0].Name)
	assert.Len(t, makes[0].Models, 1)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/vehicle-models/?make=%d", makeEntry.ID), nil)
	req.Header.Set("Authorization", "Bearer "+inspectorToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var modelNames []models.VehicleModelName
	json.NewDecoder(resp.Body).Decode(&modelNames)
	assert.Len(t, modelNames, 1)
	assert.Equal(t, "T680", modelNames[0].Name)
}

func TestVehicleUpdateClearsZeroValues(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, adminToken := createTestAdmin(db, "vupadmin")
	customer, _ := createTestCustomer(db, "vupcustomer")
	vehicle := createTestVehicle(db, customer.ID, "3AKJHHDR0LSLV0010")
	vehicle.Mileage = 125000
	vehicle.Notes = "brake pads due"
	db.Save(vehicle)

	update, _ := json.Marshal(map[string]interface{}{"mileage": 0, "notes": ""})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/vehicles/%d", vehicle.ID), bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var reloaded models.Vehicle
	assert.NoError(t, db.First(&reloaded, vehicle.ID).Error)
	assert.Equal(t, 0, reloaded.Mileage)
	assert.Equal(t, "", reloaded.Notes)
	// Omitted fields stay untouched
	assert.Equal(t, "3AKJHHDR0LSLV0010", reloaded.VIN)
	assert.Equal(t, "Freightliner", reloaded.Make)

	// Identifying fields cannot be blanked out
	update, _ = json.Marshal(map[string]interface{}{"vin": ""})
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/vehicles/%d", vehicle.ID), bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCustomerUpdateClearsNotes(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, adminToken := createTestAdmin(db, "cupadmin")
	customer, _ := createTestCustomer(db, "cupcustomer")
	customer.Notes = "net-30 terms"
	customer.City = "Denver"
	db.Save(customer)

	update, _ := json.Marshal(map[string]interface{}{"notes": "", "city": "Boulder"})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/customers/%d", customer.ID), bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var reloaded models.Customer
	assert.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.Equal(t, "", reloaded.Notes)
	assert.Equal(t, "Boulder", reloaded.City)
	assert.Equal(t, "cupcustomer Logistics LLC", reloaded.LegalName)

	// Legal name cannot be blanked out
	update, _ = json.Marshal(map[string]interface{}{"legal_name": ""})
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/customers/%d", customer.ID), bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestAssignmentCrud(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	_, adminToken := createTestAdmin(db, "asgadmin")
	inspector, _ := createTestInspector(db, "asginspector")
	customer, _ := createTestCustomer(db, "asgcustomer")
	vehicle := createTestVehicle(db, customer.ID, "3AKJHHDR0LSLV0003")

	payload := map[string]interface{}{
		"vehicle":       vehicle.ID,
		"inspector":     inspector.ID,
		"scheduled_for": "2026-09-15T08:00:00Z",
		"remarks":       "Quarterly DOT check",
	}
	jsonData, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/assignments/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var created models.VehicleAssignment
	json.NewDecoder(resp.Body).Decode(&created)
	assert.Equal(t, models.AssignmentStatusAssigned, created.Status)
	assert.NotNil(t, created.ScheduledFor)

	// Unknown inspector reference is a validation failure
	payload["inspector"] = 9999
	jsonData, _ = json.Marshal(payload)
	req = httptest.NewRequest("POST", "/api/assignments/", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Status transitions through update
	update, _ := json.Marshal(map[string]string{"status": models.AssignmentStatusInProgress})
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/assignments/%d", created.ID), bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.VehicleAssignment
	json.NewDecoder(resp.Body).Decode(&updated)
	assert.Equal(t, models.AssignmentStatusInProgress, updated.Status)
}
