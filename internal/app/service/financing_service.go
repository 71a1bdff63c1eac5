package service

import (
	"errors"
	"fmt"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidLoanAmount = errors.New("loan amount must be positive")

type FinancingRequest struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	VehicleID        *uint
	EmploymentStatus string
	EmployerName     string
	AnnualIncome     float64
	CreditScoreRange string
	LoanAmount       float64
	DownPayment      float64
	TermMonths       int
	Notes            string
}

type FinancingService interface {
	CreateApplication(req FinancingRequest) (*model.FinancingApplication, error)
	GetAllApplications() ([]model.FinancingApplication, error)
	GetApplicationByID(id uint) (*model.FinancingApplication, error)
	GetApplicationsByCustomer(customerID uint) ([]model.FinancingApplication, error)
	UpdateStatus(id uint, status model.FinancingStatus) (*model.FinancingApplication, error)
	DeleteApplication(id uint) error
}

type financingService struct {
	financingRepo repository.FinancingRepository
	customerSvc   CustomerService
	notifier      Notifier
}

func NewFinancingService(financingRepo repository.FinancingRepository, customerSvc CustomerService, notifier Notifier) FinancingService {
	return &financingService{
		financingRepo: financingRepo,
		customerSvc:   customerSvc,
		notifier:      notifier,
	}
}

func (s *financingService) CreateApplication(req FinancingRequest) (*model.FinancingApplication, error) {
	if req.LoanAmount <= 0 {
		return nil, ErrInvalidLoanAmount
	}

	customer, err := s.customerSvc.GetOrCreate(req.FirstName, req.LastName, req.Email, req.Phone, &CustomerExtra{
		Source: model.SourceFinancing,
	})
	if err != nil {
		return nil, err
	}

	application := &model.FinancingApplication{
		CustomerID:       customer.ID,
		VehicleID:        req.VehicleID,
		CustomerName:     customer.FullName(),
		CustomerEmail:    customer.Email,
		CustomerPhone:    req.Phone,
		EmploymentStatus: req.EmploymentStatus,
		EmployerName:     req.EmployerName,
		AnnualIncome:     req.AnnualIncome,
		CreditScoreRange: req.CreditScoreRange,
		LoanAmount:       req.LoanAmount,
		DownPayment:      req.DownPayment,
		TermMonths:       req.TermMonths,
		Status:           model.FinancingSubmitted,
		Notes:            req.Notes,
	}

	if err := s.financingRepo.Create(application); err != nil {
		logger.Error("Failed to create financing application", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return nil, err
	}

	if err := s.customerSvc.LinkActivity(customer.ID, model.ActivityFinancing, application.ID); err != nil {
		logger.Warn("Failed to link financing application to customer", map[string]interface{}{
			"customer_id":    customer.ID,
			"application_id": application.ID,
			"error":          err.Error(),
		})
	}

	logger.Info("Financing application submitted", map[string]interface{}{
		"application_id": application.ID,
		"customer_id":    customer.ID,
		"loan_amount":    application.LoanAmount,
	})

	if s.notifier != nil {
		go func() {
			msg := fmt.Sprintf("Financing application from %s: $%.2f over %d months",
				application.CustomerName, application.LoanAmount, application.TermMonths)
			if err := s.notifier.NotifyStaff(msg); err != nil {
				logger.Warn("Failed to send financing notification", map[string]interface{}{
					"application_id": application.ID,
					"error":          err.Error(),
				})
			}
		}()
	}

	return application, nil
}

func (s *financingService) GetAllApplications() ([]model.FinancingApplication, error) {
	return s.financingRepo.FindAll()
}

func (s *financingService) GetApplicationByID(id uint) (*model.FinancingApplication, error) {
	application, err := s.financingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return application, nil
}

func (s *financingService) GetApplicationsByCustomer(customerID uint) ([]model.FinancingApplication, error) {
	return s.financingRepo.FindByCustomerID(customerID)
}

func (s *financingService) UpdateStatus(id uint, status model.FinancingStatus) (*model.FinancingApplication, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	application, err := s.financingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if !application.Status.CanTransition(status) {
		logger.Warn("Rejected financing status transition", map[string]interface{}{
			"application_id": id,
			"from":           application.Status,
			"to":             status,
		})
		return nil, ErrInvalidTransition
	}

	if err := s.financingRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	application.Status = status

	logger.Info("Financing application status updated", map[string]interface{}{
		"application_id": id,
		"status":         status,
	})
	return application, nil
}

func (s *financingService) DeleteApplication(id uint) error {
	if err := s.financingRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}
