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

type FinancingController struct {
	financingService service.FinancingService
}

func NewFinancingController(financingService service.FinancingService) *FinancingController {
	return &FinancingController{
		financingService: financingService,
	}
}

type CreateFinancingRequest struct {
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            string  `json:"phone"`
	VehicleID        *uint   `json:"vehicle_id"`
	EmploymentStatus string  `json:"employment_status"`
	EmployerName     string  `json:"employer_name"`
	AnnualIncome     float64 `json:"annual_income" binding:"gte=0"`
	CreditScoreRange string  `json:"credit_score_range"`
	LoanAmount       float64 `json:"loan_amount" binding:"required,gt=0"`
	DownPayment      float64 `json:"down_payment" binding:"gte=0"`
	TermMonths       int     `json:"term_months" binding:"required,gt=0"`
	Notes            string  `json:"notes"`
}

// CreateApplication accepts a financing application from the storefront
// POST /api/v1/financing
func (ctrl *FinancingController) CreateApplication(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateFinancingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid financing application", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	application, err := ctrl.financingService.CreateApplication(service.FinancingRequest{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		VehicleID:        req.VehicleID,
		EmploymentStatus: req.EmploymentStatus,
		EmployerName:     req.EmployerName,
		AnnualIncome:     req.AnnualIncome,
		CreditScoreRange: req.CreditScoreRange,
		LoanAmount:       req.LoanAmount,
		DownPayment:      req.DownPayment,
		TermMonths:       req.TermMonths,
		Notes:            req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLoanAmount):
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Loan amount must be positive")
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Invalid email address")
		default:
			log.Error("Failed to create financing application", err, nil)
			apperrors.InternalError(c, "Failed to create financing application")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"application": application,
	})
}

// ListApplications returns all financing applications (staff only)
// GET /api/v1/admin/financing
func (ctrl *FinancingController) ListApplications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	applications, err := ctrl.financingService.GetAllApplications()
	if err != nil {
		log.Error("Failed to fetch financing applications", err, nil)
		apperrors.InternalError(c, "Failed to fetch financing applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"count":        len(applications),
	})
}

// GetApplicationByID returns one financing application (staff only)
// GET /api/v1/admin/financing/:id
func (ctrl *FinancingController) GetApplicationByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	application, err := ctrl.financingService.GetApplicationByID(id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.ActivityNotFound, "Application not found")
			return
		}
		log.Error("Failed to fetch financing application", err, map[string]interface{}{
			"application_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch financing application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

// UpdateApplicationStatus moves an application along its lifecycle (staff only)
// PATCH /api/v1/admin/financing/:id/status
func (ctrl *FinancingController) UpdateApplicationStatus(c *gin.Context) {
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

	application, err := ctrl.financingService.UpdateStatus(id, model.FinancingStatus(req.Status))
	if err != nil {
		respondStatusUpdateError(c, log, err, id, req.Status)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}
