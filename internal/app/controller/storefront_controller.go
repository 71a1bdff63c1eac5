package controller

import (
	"net/http"

	"github.com/autolot/dealership-backend/config"
	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// StorefrontController serves the public pages: the business profile and the
// featured vehicle strip.
type StorefrontController struct {
	profile        config.DealershipProfile
	vehicleService service.VehicleService
}

func NewStorefrontController(profile config.DealershipProfile, vehicleService service.VehicleService) *StorefrontController {
	return &StorefrontController{
		profile:        profile,
		vehicleService: vehicleService,
	}
}

// GetProfile returns the dealership business profile
// GET /api/v1/profile
func (ctrl *StorefrontController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"name":        ctrl.profile.Name,
			"phone":       ctrl.profile.Phone,
			"email":       ctrl.profile.Email,
			"address":     ctrl.profile.Address,
			"hours":       ctrl.profile.Hours,
			"website_url": ctrl.profile.WebsiteURL,
			"social_urls": ctrl.profile.SocialURLs,
		},
	})
}

// GetFeaturedVehicles returns in-stock featured vehicles for the landing page
// GET /api/v1/featured
func (ctrl *StorefrontController) GetFeaturedVehicles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	featured := true
	inStock := true
	sold := false
	vehicles, err := ctrl.vehicleService.ListVehicles(service.VehicleListOptions{
		Featured: &featured,
		InStock:  &inStock,
		Sold:     &sold,
	})
	if err != nil {
		log.Error("Failed to fetch featured vehicles", err, nil)
		apperrors.InternalError(c, "Failed to fetch featured vehicles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}
