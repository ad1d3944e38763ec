package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fleetportal-backend/controllers"
	"fleetportal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestObtainToken(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)
	createTestAdmin(db, "portaladmin")

	tests := []struct {
		name           string
		request        controllers.TokenRequest
		expectedStatus int
	}{
		{
			name:           "Login with username",
			request:        controllers.TokenRequest{Username: "portaladmin", Password: "password123"},
			expectedStatus: 200,
		},
		{
			name:           "Login with email",
			request:        controllers.TokenRequest{Username: "portaladmin@test.com", Password: "password123"},
			expectedStatus: 200,
		},
		{
			name:           "Wrong password",
			request:        controllers.TokenRequest{Username: "portaladmin", Password: "wrong"},
			expectedStatus: 400,
		},
		{
			name:           "Unknown account",
			request:        controllers.TokenRequest{Username: "nobody", Password: "password123"},
			expectedStatus: 400,
		},
		{
			name:           "Missing password",
			request:        controllers.TokenRequest{Username: "portaladmin"},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonData, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/api/auth/token", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == 200 {
				var response controllers.TokenResponse
				err = json.NewDecoder(resp.Body).Decode(&response)
				assert.NoError(t, err)
				assert.NotEmpty(t, response.Token)
				assert.NotNil(t, response.Profile)
				assert.Equal(t, models.RoleAdmin, response.Profile.Role)
			}
		})
	}
}

func TestObtainTokenDisabledAccount(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)
	profile, _ := createTestAdmin(db, "disabledadmin")

	db.Model(&models.User{}).Where("id = ?", profile.UserID).Update("is_active", false)

	jsonData, _ := json.Marshal(controllers.TokenRequest{Username: "disabledadmin", Password: "password123"})
	req := httptest.NewRequest("POST", "/api/auth/token", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var response map[string]string
	json.NewDecoder(resp.Body).Decode(&response)
	assert.Equal(t, "User account is disabled.", response["error"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	req := httptest.NewRequest("GET", "/api/vehicles/", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
