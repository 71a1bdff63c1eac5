package controller

import (
	"errors"
	"net/http"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type TestDriveController struct {
	testDriveService service.TestDriveService
}

func NewTestDriveController(testDriveService service.TestDriveService) *TestDriveController {
	return &TestDriveController{
		testDriveService: testDriveService,
	}
}

type CreateTestDriveRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	VehicleID     *uint  `json:"vehicle_id"`
	PreferredDate string `json:"preferred_date" binding:"required"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateTestDrive accepts a test drive request from the storefront
// POST /api/v1/test-drives
func (ctrl *TestDriveController) CreateTestDrive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTestDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid test drive request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	testDrive, err := ctrl.testDriveService.CreateTestDrive(service.TestDriveRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		VehicleID:     req.VehicleID,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.VehicleNotFound, "Vehicle not found")
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Invalid email address")
		default:
			log.Error("Failed to create test drive", err, nil)
			apperrors.InternalError(c, "Failed to create test drive request")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"test_drive": testDrive,
	})
}

// ListTestDrives returns all test drive requests (staff only)
// GET /api/v1/admin/test-drives
func (ctrl *TestDriveController) ListTestDrives(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	testDrives, err := ctrl.testDriveService.GetAllTestDrives()
	if err != nil {
		log.Error("Failed to fetch test drives", err, nil)
		apperrors.InternalError(c, "Failed to fetch test drives")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drives": testDrives,
		"count":       len(testDrives),
	})
}

// GetTestDriveByID returns one test drive request (staff only)
// GET /api/v1/admin/test-drives/:id
func (ctrl *TestDriveController) GetTestDriveByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	testDrive, err := ctrl.testDriveService.GetTestDriveByID(id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ActivityNotFound, "Test drive not found")
			return
		}
		log.Error("Failed to fetch test drive", err, map[string]interface{}{
			"test_drive_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch test drive")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drive": testDrive,
	})
}

// UpdateTestDriveStatus moves a test drive along its lifecycle (staff only)
// PATCH /api/v1/admin/test-drives/:id/status
func (ctrl *TestDriveController) UpdateTestDriveStatus(c *gin.Context) {
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

	testDrive, err := ctrl.testDriveService.UpdateStatus(id, model.TestDriveStatus(req.Status))
	if err != nil {
		respondStatusUpdateError(c, log, err, id, req.Status)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test_drive": testDrive,
	})
}

// respondStatusUpdateError maps the shared activity status errors.
func respondStatusUpdateError(c *gin.Context, log *logger.Logger, err error, id uint, status string) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ActivityNotFound, "Record not found")
	case errors.Is(err, service.ErrInvalidStatus):
		apperrors.BadRequest(c, apperrors.ActivityInvalidStatus, "Unknown status: "+status)
	case errors.Is(err, service.ErrInvalidTransition):
		apperrors.Conflict(c, apperrors.ActivityInvalidTransition, "Transition to "+status+" is not allowed from the current status")
	default:
		log.Error("Failed to update status", err, map[string]interface{}{
			"id":     id,
			"status": status,
		})
		apperrors.InternalError(c, "Failed to update status")
	}
}
