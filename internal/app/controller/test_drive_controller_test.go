package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/internal/app/service"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDriveControllerTest(t *testing.T) (*TestDriveController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	testDriveRepo := repository.NewTestDriveRepository(testDB)
	vehicleRepo := repository.NewVehicleRepository(testDB)
	customerService := service.NewCustomerService(repository.NewCustomerRepository(testDB), testDB)
	testDriveService := service.NewTestDriveService(testDriveRepo, vehicleRepo, customerService, nil)
	testDriveController := NewTestDriveController(testDriveService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return testDriveController, router, testDB
}

func TestTestDriveController_CreateTestDrive(t *testing.T) {
	controller, router, testDB := setupTestDriveControllerTest(t)

	router.POST("/test-drives", controller.CreateTestDrive)

	body, _ := json.Marshal(map[string]interface{}{
		"first_name":     "Jane",
		"last_name":      "Doe",
		"email":          "jane@example.com",
		"phone":          "555-0101",
		"preferred_date": "2026-09-02",
		"preferred_time": "14:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/test-drives", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// A customer record appeared as a side effect of the public submission.
	var customer model.Customer
	require.NoError(t, testDB.Where("email = ?", "jane@example.com").First(&customer).Error)
	assert.Contains(t, []string(customer.Sources), model.SourceTestDrive)
}

func TestTestDriveController_CreateTestDrive_InvalidEmail(t *testing.T) {
	controller, router, _ := setupTestDriveControllerTest(t)

	router.POST("/test-drives", controller.CreateTestDrive)

	body, _ := json.Marshal(map[string]interface{}{
		"first_name":     "Jane",
		"email":          "not-an-email",
		"preferred_date": "2026-09-02",
	})
	req := httptest.NewRequest(http.MethodPost, "/test-drives", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seedTestDrive(t *testing.T, testDB *gorm.DB, status model.TestDriveStatus) *model.TestDrive {
	customer := &model.Customer{FirstName: "Jane", Email: "jane@example.com"}
	require.NoError(t, testDB.Create(customer).Error)

	testDrive := &model.TestDrive{
		CustomerID:    customer.ID,
		CustomerName:  "Jane",
		CustomerEmail: customer.Email,
		Status:        status,
	}
	require.NoError(t, testDB.Create(testDrive).Error)
	return testDrive
}

func patchStatus(router *gin.Engine, path, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{"status": status})
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTestDriveController_UpdateStatus_Success(t *testing.T) {
	controller, router, testDB := setupTestDriveControllerTest(t)

	seedTestDrive(t, testDB, model.TestDrivePending)

	router.PATCH("/admin/test-drives/:id/status", controller.UpdateTestDriveStatus)

	w := patchStatus(router, "/admin/test-drives/1/status", "scheduled")
	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.TestDrive
	require.NoError(t, testDB.First(&stored, 1).Error)
	assert.Equal(t, model.TestDriveScheduled, stored.Status)
}

func TestTestDriveController_UpdateStatus_InvalidTransition(t *testing.T) {
	controller, router, testDB := setupTestDriveControllerTest(t)

	seedTestDrive(t, testDB, model.TestDrivePending)

	router.PATCH("/admin/test-drives/:id/status", controller.UpdateTestDriveStatus)

	w := patchStatus(router, "/admin/test-drives/1/status", "completed")
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ACTIVITY_INVALID_TRANSITION", response["error"])
}

func TestTestDriveController_UpdateStatus_UnknownStatus(t *testing.T) {
	controller, router, testDB := setupTestDriveControllerTest(t)

	seedTestDrive(t, testDB, model.TestDrivePending)

	router.PATCH("/admin/test-drives/:id/status", controller.UpdateTestDriveStatus)

	w := patchStatus(router, "/admin/test-drives/1/status", "parked")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTestDriveController_UpdateStatus_NotFound(t *testing.T) {
	controller, router, _ := setupTestDriveControllerTest(t)

	router.PATCH("/admin/test-drives/:id/status", controller.UpdateTestDriveStatus)

	w := patchStatus(router, "/admin/test-drives/9999/status", "scheduled")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTestDriveController_ListTestDrives(t *testing.T) {
	controller, router, testDB := setupTestDriveControllerTest(t)

	seedTestDrive(t, testDB, model.TestDrivePending)

	router.GET("/admin/test-drives", controller.ListTestDrives)

	req := httptest.NewRequest(http.MethodGet, "/admin/test-drives", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}
