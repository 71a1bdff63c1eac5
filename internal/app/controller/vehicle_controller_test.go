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

func setupVehicleControllerTest(t *testing.T) (*VehicleController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	vehicleRepo := repository.NewVehicleRepository(testDB)
	vehicleService := service.NewVehicleService(vehicleRepo)
	vehicleController := NewVehicleController(vehicleService, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return vehicleController, router, testDB
}

func seedControllerVehicle(t *testing.T, testDB *gorm.DB, vin string, mutate func(*model.Vehicle)) *model.Vehicle {
	vehicle := &model.Vehicle{
		VIN:       vin,
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Condition: model.ConditionUsed,
		InStock:   true,
	}
	if mutate != nil {
		mutate(vehicle)
	}
	require.NoError(t, testDB.Create(vehicle).Error)
	return vehicle
}

func TestVehicleController_ListVehicles(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	seedControllerVehicle(t, testDB, "4T1BF1FK5HU123456", nil)
	seedControllerVehicle(t, testDB, "1HGCM82633A004352", func(v *model.Vehicle) {
		v.Make = "Honda"
		v.Sold = true
		v.InStock = false
	})

	router.GET("/vehicles", controller.ListVehicles)

	req := httptest.NewRequest(http.MethodGet, "/vehicles?sold=false", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestVehicleController_GetVehicleByID_CountsView(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	vehicle := seedControllerVehicle(t, testDB, "4T1BF1FK5HU123456", nil)

	router.GET("/vehicles/:id", controller.GetVehicleByID)

	req := httptest.NewRequest(http.MethodGet, "/vehicles/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Vehicle
	require.NoError(t, testDB.First(&stored, vehicle.ID).Error)
	assert.Equal(t, 1, stored.ViewCount)
}

func TestVehicleController_GetVehicleByID_NotFound(t *testing.T) {
	controller, router, _ := setupVehicleControllerTest(t)

	router.GET("/vehicles/:id", controller.GetVehicleByID)

	req := httptest.NewRequest(http.MethodGet, "/vehicles/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VEHICLE_NOT_FOUND", response["error"])
}

func TestVehicleController_CreateVehicle_Success(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	router.POST("/admin/vehicles", controller.CreateVehicle)

	body, _ := json.Marshal(map[string]interface{}{
		"vin":       "4T1BF1FK5HU123456",
		"year":      2021,
		"make":      "Toyota",
		"model":     "Camry",
		"price":     25000,
		"mileage":   32000,
		"condition": "used",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/vehicles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	testDB.Model(&model.Vehicle{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestVehicleController_CreateVehicle_InvalidVIN(t *testing.T) {
	controller, router, _ := setupVehicleControllerTest(t)

	router.POST("/admin/vehicles", controller.CreateVehicle)

	body, _ := json.Marshal(map[string]interface{}{
		"vin":       "BAD-VIN",
		"year":      2021,
		"make":      "Toyota",
		"model":     "Camry",
		"price":     25000,
		"condition": "used",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/vehicles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VEHICLE_INVALID_VIN", response["error"])
}

func TestVehicleController_SetSold_Rejected(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	seedControllerVehicle(t, testDB, "4T1BF1FK5HU123456", nil)

	router.PATCH("/admin/vehicles/:id/sold", controller.SetSold)

	body, _ := json.Marshal(map[string]interface{}{"value": true})
	req := httptest.NewRequest(http.MethodPatch, "/admin/vehicles/1/sold", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VEHICLE_SOLD_VIA_SALE_ONLY", response["error"])
}

func TestVehicleController_SetSold_ClearAllowed(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	vehicle := seedControllerVehicle(t, testDB, "4T1BF1FK5HU123456", func(v *model.Vehicle) {
		v.Sold = true
	})

	router.PATCH("/admin/vehicles/:id/sold", controller.SetSold)

	body, _ := json.Marshal(map[string]interface{}{"value": false})
	req := httptest.NewRequest(http.MethodPatch, "/admin/vehicles/1/sold", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Vehicle
	require.NoError(t, testDB.First(&stored, vehicle.ID).Error)
	assert.False(t, stored.Sold)
}

func TestVehicleController_GetAggregates(t *testing.T) {
	controller, router, testDB := setupVehicleControllerTest(t)

	seedControllerVehicle(t, testDB, "4T1BF1FK5HU123456", func(v *model.Vehicle) {
		v.Price = 20000
	})
	seedControllerVehicle(t, testDB, "1HGCM82633A004352", func(v *model.Vehicle) {
		v.Price = 40000
		v.Sold = true
		v.InStock = false
	})

	router.GET("/admin/vehicles/aggregates", controller.GetAggregates)

	req := httptest.NewRequest(http.MethodGet, "/admin/vehicles/aggregates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Aggregates service.InventoryAggregates `json:"aggregates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Aggregates.TotalVehicles)
	assert.Equal(t, 1, response.Aggregates.InStock)
	assert.Equal(t, 1, response.Aggregates.Sold)
	assert.Equal(t, float64(20000), response.Aggregates.TotalValue)
	assert.Equal(t, float64(30000), response.Aggregates.AveragePrice)
}
