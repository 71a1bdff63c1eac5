package controller

import (
	"errors"
	"net/http"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type TradeInController struct {
	tradeInService service.TradeInService
}

func NewTradeInController(tradeInService service.TradeInService) *TradeInController {
	return &TradeInController{
		tradeInService: tradeInService,
	}
}

type CreateTradeInRequest struct {
	FirstName       string   `json:"first_name" binding:"required"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email" binding:"required,email"`
	Phone           string   `json:"phone"`
	VehicleYear     int      `json:"vehicle_year" binding:"required,gte=1900"`
	VehicleMake     string   `json:"vehicle_make" binding:"required"`
	VehicleModel    string   `json:"vehicle_model" binding:"required"`
	VehicleVIN      string   `json:"vehicle_vin"`
	VehicleMileage  int      `json:"vehicle_mileage" binding:"gte=0"`
	ConditionReport string   `json:"condition_report"`
	PhotoURLs       []string `json:"photo_urls"`
	Notes           string   `json:"notes"`
}

type MakeOfferRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateTradeIn accepts a trade-in submission from the storefront
// POST /api/v1/trade-ins
func (ctrl *TradeInController) CreateTradeIn(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTradeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid trade-in request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	tradeIn, err := ctrl.tradeInService.CreateTradeIn(service.TradeInRequest{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		VehicleYear:     req.VehicleYear,
		VehicleMake:     req.VehicleMake,
		VehicleModel:    req.VehicleModel,
		VehicleVIN:      req.VehicleVIN,
		VehicleMileage:  req.VehicleMileage,
		ConditionReport: req.ConditionReport,
		PhotoURLs:       req.PhotoURLs,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Invalid email address")
			return
		}
		log.Error("Failed to create trade-in", err, nil)
		apperrors.InternalError(c, "Failed to create trade-in")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"trade_in": tradeIn,
	})
}

// ListTradeIns returns all trade-ins (staff only)
// GET /api/v1/admin/trade-ins
func (ctrl *TradeInController) ListTradeIns(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tradeIns, err := ctrl.tradeInService.GetAllTradeIns()
	if err != nil {
		log.Error("Failed to fetch trade-ins", err, nil)
		apperrors.InternalError(c, "Failed to fetch trade-ins")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trade_ins": tradeIns,
		"count":     len(tradeIns),
	})
}

// GetTradeInByID returns one trade-in (staff only)
// GET /api/v1/admin/trade-ins/:id
func (ctrl *TradeInController) GetTradeInByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tradeIn, err := ctrl.tradeInService.GetTradeInByID(id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ActivityNotFound, "Trade-in not found")
			return
		}
		log.Error("Failed to fetch trade-in", err, map[string]interface{}{
			"trade_in_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch trade-in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trade_in": tradeIn,
	})
}

// UpdateTradeInStatus moves a trade-in along its lifecycle (staff only)
// PATCH /api/v1/admin/trade-ins/:id/status
func (ctrl *TradeInController) UpdateTradeInStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must include status")
		return
	}

	tradeIn, err := ctrl.tradeInService.UpdateStatus(id, model.TradeInStatus(req.Status))
	if err != nil {
		respondStatusUpdateError(c, log, err, id, req.Status)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trade_in": tradeIn,
	})
}

// MakeOffer records the appraisal offer with its 7-day validity (staff only)
// POST /api/v1/admin/trade-ins/:id/offer
func (ctrl *TradeInController) MakeOffer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must include a positive amount")
		return
	}

	tradeIn, err := ctrl.tradeInService.MakeOffer(id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ActivityNotFound, "Trade-in not found")
		case errors.Is(err, service.ErrInvalidOfferAmount):
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Offer amount must be positive")
		case errors.Is(err, service.ErrInvalidTransition):
			apperrors.Conflict(c, apperrors.ActivityInvalidTransition, "An offer can only be made on an inspected trade-in")
		default:
			log.Error("Failed to make trade-in offer", err, map[string]interface{}{
				"trade_in_id": id,
			})
			apperrors.InternalError(c, "Failed to make offer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trade_in": tradeIn,
	})
}
