package controller

import (
	"bytes"
	"encoding/json"
	"errors"
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

func setupSaleControllerTest(t *testing.T) (*SaleController, *gin.Engine, *gorm.DB, *model.Vehicle) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	vehicleRepo := repository.NewVehicleRepository(testDB)
	reconRepo := repository.NewReconciliationRepository(testDB)
	customerService := service.NewCustomerService(repository.NewCustomerRepository(testDB), testDB)
	saleService := service.NewSaleService(vehicleRepo, reconRepo, customerService, nil)
	vehicleService := service.NewVehicleService(vehicleRepo)
	saleController := NewSaleController(saleService, vehicleService, nil)

	vehicle := &model.Vehicle{
		VIN:       "4T1BF1FK5HU123456",
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Condition: model.ConditionUsed,
		InStock:   true,
	}
	require.NoError(t, testDB.Create(vehicle).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return saleController, router, testDB, vehicle
}

func saleRequestBody(vehicleID uint) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"vehicle_id":   vehicleID,
		"first_name":   "Jane",
		"last_name":    "Doe",
		"email":        "jane@example.com",
		"phone":        "555-0101",
		"sale_price":   24500,
		"down_payment": 5000,
	})
	return body
}

func postSale(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/sales", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaleController_CompleteSale_Success(t *testing.T) {
	controller, router, testDB, vehicle := setupSaleControllerTest(t)

	router.POST("/admin/sales", controller.CompleteSale)

	w := postSale(router, saleRequestBody(vehicle.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Sale service.SaleResult `json:"sale"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "jane@example.com", response.Sale.Customer.Email)
	assert.Equal(t, float64(24500), response.Sale.Purchase.SalePrice)

	var stored model.Vehicle
	require.NoError(t, testDB.First(&stored, vehicle.ID).Error)
	assert.True(t, stored.Sold)
}

func TestSaleController_CompleteSale_AlreadySold(t *testing.T) {
	controller, router, testDB, vehicle := setupSaleControllerTest(t)

	router.POST("/admin/sales", controller.CompleteSale)

	// First sale succeeds.
	w := postSale(router, saleRequestBody(vehicle.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	// A repeat is refused by the sold-flag precondition; no second purchase
	// is appended.
	w = postSale(router, saleRequestBody(vehicle.ID))
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VEHICLE_ALREADY_SOLD", response["error"])

	var count int64
	testDB.Model(&model.Purchase{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaleController_CompleteSale_VehicleNotFound(t *testing.T) {
	controller, router, _, _ := setupSaleControllerTest(t)

	router.POST("/admin/sales", controller.CompleteSale)

	w := postSale(router, saleRequestBody(9999))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaleController_CompleteSale_InvalidBody(t *testing.T) {
	controller, router, _, vehicle := setupSaleControllerTest(t)

	router.POST("/admin/sales", controller.CompleteSale)

	body, _ := json.Marshal(map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"first_name": "Jane",
		"email":      "not-an-email",
		"sale_price": 24500,
	})
	w := postSale(router, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// failingSetSoldVehicleRepo simulates the sold-flag write failing after the
// purchase has committed.
type failingSetSoldVehicleRepo struct {
	repository.VehicleRepository
}

func (r *failingSetSoldVehicleRepo) SetSold(id uint, sold bool) error {
	return errors.New("connection reset")
}

func TestSaleController_CompleteSale_PartialWarning(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	vehicleRepo := &failingSetSoldVehicleRepo{repository.NewVehicleRepository(testDB)}
	reconRepo := repository.NewReconciliationRepository(testDB)
	customerService := service.NewCustomerService(repository.NewCustomerRepository(testDB), testDB)
	saleService := service.NewSaleService(vehicleRepo, reconRepo, customerService, nil)
	vehicleService := service.NewVehicleService(vehicleRepo)
	saleController := NewSaleController(saleService, vehicleService, nil)

	vehicle := &model.Vehicle{
		VIN:       "4T1BF1FK5HU123456",
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Condition: model.ConditionUsed,
		InStock:   true,
	}
	require.NoError(t, testDB.Create(vehicle).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/sales", saleController.CompleteSale)

	w := postSale(router, saleRequestBody(vehicle.ID))

	// The sale is recorded, so the response is a success with a warning.
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SALE_PARTIALLY_COMPLETED", response["warning"])

	var tasks []model.ReconciliationTask
	require.NoError(t, testDB.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.ReconciliationOpen, tasks[0].Status)
}

func TestSaleController_ResolveReconciliationTask(t *testing.T) {
	controller, router, testDB, vehicle := setupSaleControllerTest(t)

	task := &model.ReconciliationTask{
		VehicleID:  vehicle.ID,
		CustomerID: 1,
		PurchaseID: 1,
		Reason:     "vehicle not marked sold",
		Status:     model.ReconciliationOpen,
	}
	require.NoError(t, testDB.Create(task).Error)

	router.POST("/admin/sales/reconciliations/:id/resolve", controller.ResolveReconciliationTask)

	req := httptest.NewRequest(http.MethodPost, "/admin/sales/reconciliations/1/resolve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Vehicle
	require.NoError(t, testDB.First(&stored, vehicle.ID).Error)
	assert.True(t, stored.Sold)

	var resolved model.ReconciliationTask
	require.NoError(t, testDB.First(&resolved, task.ID).Error)
	assert.Equal(t, model.ReconciliationResolved, resolved.Status)
}
