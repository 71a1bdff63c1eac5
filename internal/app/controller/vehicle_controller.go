package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	ws "github.com/autolot/dealership-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	vehicleService service.VehicleService
	hub            *ws.Hub
}

func NewVehicleController(vehicleService service.VehicleService, hub *ws.Hub) *VehicleController {
	return &VehicleController{
		vehicleService: vehicleService,
		hub:            hub,
	}
}

type CreateVehicleRequest struct {
	VIN           string                 `json:"vin"`
	Year          int                    `json:"year" binding:"required,gte=1900"`
	Make          string                 `json:"make" binding:"required"`
	Model         string                 `json:"model" binding:"required"`
	Trim          string                 `json:"trim"`
	Price         float64                `json:"price" binding:"gte=0"`
	Mileage       int                    `json:"mileage" binding:"gte=0"`
	MileageUnit   string                 `json:"mileage_unit"`
	Condition     model.VehicleCondition `json:"condition" binding:"required"`
	BodyType      string                 `json:"body_type"`
	Transmission  string                 `json:"transmission"`
	Drivetrain    string                 `json:"drivetrain"`
	FuelType      string                 `json:"fuel_type"`
	ExteriorColor string                 `json:"exterior_color"`
	InteriorColor string                 `json:"interior_color"`
	Features      []string               `json:"features"`
	ImageURLs     []string               `json:"image_urls"`
	Description   string                 `json:"description"`
	IsFeatured    bool                   `json:"is_featured"`
}

type SetFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// ListVehicles returns vehicles matching the query filters
// GET /api/v1/vehicles
func (ctrl *VehicleController) ListVehicles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.VehicleListOptions{
		Make:   c.Query("make"),
		Search: c.Query("search"),
	}
	if v := c.Query("condition"); v != "" {
		cond := model.VehicleCondition(v)
		opts.Condition = &cond
	}
	if v := c.Query("in_stock"); v != "" {
		b := v == "true"
		opts.InStock = &b
	}
	if v := c.Query("sold"); v != "" {
		b := v == "true"
		opts.Sold = &b
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		opts.Featured = &b
	}

	vehicles, err := ctrl.vehicleService.ListVehicles(opts)
	if err != nil {
		log.Error("Failed to fetch vehicles", err, nil)
		apperrors.InternalError(c, "Failed to fetch vehicles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// GetVehicleByID returns a vehicle by ID and counts the view
// GET /api/v1/vehicles/:id
func (ctrl *VehicleController) GetVehicleByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicle, err := ctrl.vehicleService.GetVehicleByID(id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
			return
		}
		log.Error("Failed to fetch vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch vehicle")
		return
	}

	if err := ctrl.vehicleService.RecordView(id); err != nil {
		log.Warn("Failed to record vehicle view", map[string]interface{}{
			"vehicle_id": id,
			"error":      err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle": vehicle,
	})
}

// CreateVehicle adds a vehicle to inventory (staff only)
// POST /api/v1/admin/vehicles
func (ctrl *VehicleController) CreateVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid vehicle creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vehicle := &model.Vehicle{
		VIN:           req.VIN,
		Year:          req.Year,
		Make:          req.Make,
		Model:         req.Model,
		Trim:          req.Trim,
		Price:         req.Price,
		Mileage:       req.Mileage,
		MileageUnit:   req.MileageUnit,
		Condition:     req.Condition,
		BodyType:      req.BodyType,
		Transmission:  req.Transmission,
		Drivetrain:    req.Drivetrain,
		FuelType:      req.FuelType,
		ExteriorColor: req.ExteriorColor,
		InteriorColor: req.InteriorColor,
		Features:      model.StringArray(req.Features),
		ImageURLs:     model.StringArray(req.ImageURLs),
		Description:   req.Description,
		InStock:       true,
		IsFeatured:    req.IsFeatured,
	}

	if err := ctrl.vehicleService.CreateVehicle(vehicle); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVIN):
			apperrors.BadRequest(c, apperrors.VehicleInvalidVIN, "VIN must be 17 characters without I, O or Q")
		case errors.Is(err, service.ErrNegativePrice), errors.Is(err, service.ErrNegativeMileage):
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
		default:
			log.Error("Failed to create vehicle", err, map[string]interface{}{
				"vin": req.VIN,
			})
			apperrors.InternalError(c, "Failed to create vehicle")
		}
		return
	}

	if ctrl.hub != nil {
		ctrl.hub.Publish(ws.EventVehicleAdded, gin.H{
			"vehicle_id": vehicle.ID,
			"name":       vehicle.DisplayName(),
			"price":      vehicle.Price,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"vehicle": vehicle,
	})
}

// UpdateVehicle replaces an inventory record (staff only)
// PUT /api/v1/admin/vehicles/:id
func (ctrl *VehicleController) UpdateVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var vehicle model.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}
	vehicle.ID = id

	if err := ctrl.vehicleService.UpdateVehicle(&vehicle); err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
		case errors.Is(err, service.ErrInvalidVIN):
			apperrors.BadRequest(c, apperrors.VehicleInvalidVIN, "VIN must be 17 characters without I, O or Q")
		case errors.Is(err, service.ErrNegativePrice), errors.Is(err, service.ErrNegativeMileage):
			apperrors.BadRequest(c, apperrors.ValidationFailed, err.Error())
		default:
			log.Error("Failed to update vehicle", err, map[string]interface{}{
				"vehicle_id": id,
			})
			apperrors.InternalError(c, "Failed to update vehicle")
		}
		return
	}

	if ctrl.hub != nil {
		ctrl.hub.Publish(ws.EventVehicleUpdated, gin.H{
			"vehicle_id": vehicle.ID,
			"name":       vehicle.DisplayName(),
			"price":      vehicle.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicle": vehicle,
	})
}

// DeleteVehicle removes a vehicle from inventory (admin only)
// DELETE /api/v1/admin/vehicles/:id
func (ctrl *VehicleController) DeleteVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.vehicleService.DeleteVehicle(id); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
			return
		}
		log.Error("Failed to delete vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		apperrors.InternalError(c, "Failed to delete vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle deleted",
	})
}

// SetInStock toggles the in-stock flag (staff only)
// PATCH /api/v1/admin/vehicles/:id/stock
func (ctrl *VehicleController) SetInStock(c *gin.Context) {
	ctrl.setFlag(c, ctrl.vehicleService.SetInStock)
}

// SetSold clears the sold flag (staff only). Setting it is rejected; sales
// go through the sale workflow.
// PATCH /api/v1/admin/vehicles/:id/sold
func (ctrl *VehicleController) SetSold(c *gin.Context) {
	ctrl.setFlag(c, ctrl.vehicleService.SetSold)
}

// SetFeatured toggles the featured flag (staff only)
// PATCH /api/v1/admin/vehicles/:id/featured
func (ctrl *VehicleController) SetFeatured(c *gin.Context) {
	ctrl.setFlag(c, ctrl.vehicleService.SetFeatured)
}

func (ctrl *VehicleController) setFlag(c *gin.Context, set func(uint, bool) error) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must include value")
		return
	}

	if err := set(id, *req.Value); err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
		case errors.Is(err, service.ErrSoldViaSaleOnly):
			apperrors.BadRequest(c, apperrors.VehicleSoldViaSale, "Use the sale workflow to mark a vehicle sold")
		default:
			log.Error("Failed to update vehicle flag", err, map[string]interface{}{
				"vehicle_id": id,
			})
			apperrors.InternalError(c, "Failed to update vehicle")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle updated",
	})
}

// GetAggregates returns the inventory summary
// GET /api/v1/admin/vehicles/aggregates
func (ctrl *VehicleController) GetAggregates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	agg, err := ctrl.vehicleService.Aggregates()
	if err != nil {
		log.Error("Failed to compute inventory aggregates", err, nil)
		apperrors.InternalError(c, "Failed to compute aggregates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aggregates": agg,
	})
}

// parseIDParam parses the :id path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
