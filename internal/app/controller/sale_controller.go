package controller

import (
	"errors"
	"net/http"

	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	ws "github.com/autolot/dealership-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

type SaleController struct {
	saleService    service.SaleService
	vehicleService service.VehicleService
	hub            *ws.Hub
}

func NewSaleController(saleService service.SaleService, vehicleService service.VehicleService, hub *ws.Hub) *SaleController {
	return &SaleController{
		saleService:    saleService,
		vehicleService: vehicleService,
		hub:            hub,
	}
}

type CompleteSaleRequest struct {
	VehicleID    uint    `json:"vehicle_id" binding:"required"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	SalePrice    float64 `json:"sale_price" binding:"required,gt=0"`
	DownPayment  float64 `json:"down_payment" binding:"gte=0"`
	TradeInValue float64 `json:"trade_in_value" binding:"gte=0"`
	Notes        string  `json:"notes"`
}

// CompleteSale runs the sale workflow for a vehicle (staff only). The sold
// check here is the only guard against selling the same vehicle twice; the
// workflow itself always appends a new purchase.
// POST /api/v1/admin/sales
func (ctrl *SaleController) CompleteSale(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sale request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vehicle, err := ctrl.vehicleService.GetVehicleByID(req.VehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
			return
		}
		log.Error("Failed to load vehicle for sale", err, map[string]interface{}{
			"vehicle_id": req.VehicleID,
		})
		apperrors.InternalError(c, "Failed to load vehicle")
		return
	}
	if vehicle.Sold {
		log.Warn("Sale rejected: vehicle already sold", map[string]interface{}{
			"vehicle_id": vehicle.ID,
			"vin":        vehicle.VIN,
		})
		apperrors.Conflict(c, apperrors.VehicleAlreadySold, "Vehicle is already sold")
		return
	}

	result, err := ctrl.saleService.CompleteSale(service.SaleRequest{
		VehicleID:    req.VehicleID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		SalePrice:    req.SalePrice,
		DownPayment:  req.DownPayment,
		TradeInValue: req.TradeInValue,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartialSale):
			// Purchase and aggregates are committed; only the vehicle flag
			// is pending. Surface it rather than pretending failure.
			c.JSON(http.StatusOK, gin.H{
				"sale":    result,
				"warning": apperrors.SalePartiallyCompleted,
				"message": "Sale recorded but vehicle not marked sold; a reconciliation task was filed",
			})
		case errors.Is(err, service.ErrVehicleNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Invalid customer email")
		default:
			log.Error("Sale failed", err, map[string]interface{}{
				"vehicle_id": req.VehicleID,
			})
			apperrors.InternalError(c, "Failed to complete sale")
		}
		return
	}

	if ctrl.hub != nil {
		ctrl.hub.Publish(ws.EventVehicleSold, gin.H{
			"vehicle_id": vehicle.ID,
			"name":       vehicle.DisplayName(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"sale": result,
	})
}

// ListReconciliationTasks returns open partial-sale tasks (staff only)
// GET /api/v1/admin/sales/reconciliations
func (ctrl *SaleController) ListReconciliationTasks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tasks, err := ctrl.saleService.OpenReconciliationTasks()
	if err != nil {
		log.Error("Failed to fetch reconciliation tasks", err, nil)
		apperrors.InternalError(c, "Failed to fetch reconciliation tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// ResolveReconciliationTask retries the vehicle flag write and closes the
// task (staff only)
// POST /api/v1/admin/sales/reconciliations/:id/resolve
func (ctrl *SaleController) ResolveReconciliationTask(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.saleService.ResolveReconciliationTask(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ResourceNotFound, "Reconciliation task not found")
			return
		}
		log.Error("Failed to resolve reconciliation task", err, map[string]interface{}{
			"task_id": id,
		})
		apperrors.InternalError(c, "Failed to resolve reconciliation task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reconciliation task resolved",
	})
}
