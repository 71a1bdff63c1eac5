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

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Source    string `json:"source"`
	Notes     string `json:"notes"`
}

type UpdateCustomerRequest struct {
	FirstName string               `json:"first_name"`
	LastName  string               `json:"last_name"`
	Phone     string               `json:"phone"`
	Address   string               `json:"address"`
	City      string               `json:"city"`
	State     string               `json:"state"`
	ZipCode   string               `json:"zip_code"`
	Status    model.CustomerStatus `json:"status"`
	Tags      []string             `json:"tags"`
	Notes     string               `json:"notes"`
}

// ListCustomers returns all customers (staff only)
// GET /api/v1/admin/customers
func (ctrl *CustomerController) ListCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.customerService.GetAllCustomers()
	if err != nil {
		log.Error("Failed to fetch customers", err, nil)
		apperrors.InternalError(c, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomerByID returns a customer with purchase and activity history
// GET /api/v1/admin/customers/:id
func (ctrl *CustomerController) GetCustomerByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := ctrl.customerService.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
	})
}

// CreateCustomer registers a customer directly (staff only). If the email is
// already known the existing record is returned unchanged.
// POST /api/v1/admin/customers
func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid customer creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	customer, err := ctrl.customerService.GetOrCreate(req.FirstName, req.LastName, req.Email, req.Phone, &service.CustomerExtra{
		Source:  req.Source,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			apperrors.BadRequest(c, apperrors.ValidationFailed, "Invalid email address")
			return
		}
		log.Error("Failed to create customer", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customer": customer,
	})
}

// UpdateCustomer updates contact details, status, tags and notes. Email,
// purchase history and the spend aggregates are not editable here.
// PUT /api/v1/admin/customers/:id
func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	customer, err := ctrl.customerService.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CustomerNotFound, "Customer not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch customer")
		return
	}

	if req.FirstName != "" {
		customer.FirstName = req.FirstName
	}
	if req.LastName != "" {
		customer.LastName = req.LastName
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.City != "" {
		customer.City = req.City
	}
	if req.State != "" {
		customer.State = req.State
	}
	if req.ZipCode != "" {
		customer.ZipCode = req.ZipCode
	}
	if req.Status != "" {
		customer.Status = req.Status
	}
	if req.Tags != nil {
		customer.Tags = model.StringArray(req.Tags)
	}
	if req.Notes != "" {
		customer.Notes = req.Notes
	}

	if err := ctrl.customerService.UpdateCustomer(customer); err != nil {
		log.Error("Failed to update customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
	})
}
