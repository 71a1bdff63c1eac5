package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	ws "github.com/autolot/dealership-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

// MarketingController pushes vehicle promotions to the Telegram channel and
// the storefront live feed.
type MarketingController struct {
	vehicleService service.VehicleService
	notifier       service.Notifier
	hub            *ws.Hub
}

func NewMarketingController(vehicleService service.VehicleService, notifier service.Notifier, hub *ws.Hub) *MarketingController {
	return &MarketingController{
		vehicleService: vehicleService,
		notifier:       notifier,
		hub:            hub,
	}
}

type PromoteVehicleRequest struct {
	Message string `json:"message"`
}

// PromoteVehicle broadcasts a vehicle promotion (staff only)
// POST /api/v1/admin/vehicles/:id/promote
func (ctrl *MarketingController) PromoteVehicle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PromoteVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vehicle, err := ctrl.vehicleService.GetVehicleByID(id)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
			return
		}
		log.Error("Failed to load vehicle for promotion", err, map[string]interface{}{
			"vehicle_id": id,
		})
		apperrors.InternalError(c, "Failed to load vehicle")
		return
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("%s - $%.0f, %d %s", vehicle.DisplayName(), vehicle.Price, vehicle.Mileage, vehicle.MileageUnit)
	}

	photoURL := ""
	if len(vehicle.ImageURLs) > 0 {
		photoURL = vehicle.ImageURLs[0]
	}

	if ctrl.notifier != nil {
		if err := ctrl.notifier.BroadcastPromo(message, photoURL); err != nil {
			log.Error("Failed to broadcast promotion", err, map[string]interface{}{
				"vehicle_id": id,
			})
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.IntegrationNotifyFailed, "Failed to deliver promotion")
			return
		}
	}

	if ctrl.hub != nil {
		ctrl.hub.Publish(ws.EventPromotion, gin.H{
			"vehicle_id": vehicle.ID,
			"message":    message,
			"photo_url":  photoURL,
		})
	}

	log.Info("Vehicle promotion broadcast", map[string]interface{}{
		"vehicle_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion sent",
	})
}
