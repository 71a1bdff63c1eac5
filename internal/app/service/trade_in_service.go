package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidOfferAmount = errors.New("offer amount must be positive")

type TradeInRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	VehicleYear     int
	VehicleMake     string
	VehicleModel    string
	VehicleVIN      string
	VehicleMileage  int
	ConditionReport string
	PhotoURLs       []string
	Notes           string
}

type TradeInService interface {
	CreateTradeIn(req TradeInRequest) (*model.TradeIn, error)
	GetAllTradeIns() ([]model.TradeIn, error)
	GetTradeInByID(id uint) (*model.TradeIn, error)
	GetTradeInsByCustomer(customerID uint) ([]model.TradeIn, error)
	UpdateStatus(id uint, status model.TradeInStatus) (*model.TradeIn, error)
	MakeOffer(id uint, amount float64) (*model.TradeIn, error)
	DeleteTradeIn(id uint) error
}

type tradeInService struct {
	tradeInRepo repository.TradeInRepository
	customerSvc CustomerService
	notifier    Notifier
}

func NewTradeInService(tradeInRepo repository.TradeInRepository, customerSvc CustomerService, notifier Notifier) TradeInService {
	return &tradeInService{
		tradeInRepo: tradeInRepo,
		customerSvc: customerSvc,
		notifier:    notifier,
	}
}

func (s *tradeInService) CreateTradeIn(req TradeInRequest) (*model.TradeIn, error) {
	customer, err := s.customerSvc.GetOrCreate(req.FirstName, req.LastName, req.Email, req.Phone, &CustomerExtra{
		Source: model.SourceTradeIn,
	})
	if err != nil {
		return nil, err
	}

	tradeIn := &model.TradeIn{
		CustomerID:      customer.ID,
		CustomerName:    customer.FullName(),
		CustomerEmail:   customer.Email,
		CustomerPhone:   req.Phone,
		VehicleYear:     req.VehicleYear,
		VehicleMake:     req.VehicleMake,
		VehicleModel:    req.VehicleModel,
		VehicleVIN:      req.VehicleVIN,
		VehicleMileage:  req.VehicleMileage,
		ConditionReport: req.ConditionReport,
		PhotoURLs:       model.StringArray(req.PhotoURLs),
		Status:          model.TradeInSubmitted,
		Notes:           req.Notes,
	}

	if err := s.tradeInRepo.Create(tradeIn); err != nil {
		logger.Error("Failed to create trade-in", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return nil, err
	}

	if err := s.customerSvc.LinkActivity(customer.ID, model.ActivityTradeIn, tradeIn.ID); err != nil {
		logger.Warn("Failed to link trade-in to customer", map[string]interface{}{
			"customer_id": customer.ID,
			"trade_in_id": tradeIn.ID,
			"error":       err.Error(),
		})
	}

	logger.Info("Trade-in submitted", map[string]interface{}{
		"trade_in_id": tradeIn.ID,
		"customer_id": customer.ID,
		"vehicle":     fmt.Sprintf("%d %s %s", tradeIn.VehicleYear, tradeIn.VehicleMake, tradeIn.VehicleModel),
	})

	if s.notifier != nil {
		go func() {
			msg := fmt.Sprintf("Trade-in submitted by %s: %d %s %s, %d miles",
				tradeIn.CustomerName, tradeIn.VehicleYear, tradeIn.VehicleMake, tradeIn.VehicleModel, tradeIn.VehicleMileage)
			if err := s.notifier.NotifyStaff(msg); err != nil {
				logger.Warn("Failed to send trade-in notification", map[string]interface{}{
					"trade_in_id": tradeIn.ID,
					"error":       err.Error(),
				})
			}
		}()
	}

	return tradeIn, nil
}

func (s *tradeInService) GetAllTradeIns() ([]model.TradeIn, error) {
	return s.tradeInRepo.FindAll()
}

func (s *tradeInService) GetTradeInByID(id uint) (*model.TradeIn, error) {
	tradeIn, err := s.tradeInRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return tradeIn, nil
}

func (s *tradeInService) GetTradeInsByCustomer(customerID uint) ([]model.TradeIn, error) {
	return s.tradeInRepo.FindByCustomerID(customerID)
}

func (s *tradeInService) UpdateStatus(id uint, status model.TradeInStatus) (*model.TradeIn, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	tradeIn, err := s.tradeInRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if !tradeIn.Status.CanTransition(status) {
		logger.Warn("Rejected trade-in status transition", map[string]interface{}{
			"trade_in_id": id,
			"from":        tradeIn.Status,
			"to":          status,
		})
		return nil, ErrInvalidTransition
	}

	tradeIn.Status = status
	if err := s.tradeInRepo.Update(tradeIn); err != nil {
		return nil, err
	}

	logger.Info("Trade-in status updated", map[string]interface{}{
		"trade_in_id": id,
		"status":      status,
	})
	return tradeIn, nil
}

// MakeOffer records the appraisal amount, stamps the 7-day validity window
// and moves the trade-in to offer-made in one write. The trade-in must be in
// inspected status.
func (s *tradeInService) MakeOffer(id uint, amount float64) (*model.TradeIn, error) {
	if amount <= 0 {
		return nil, ErrInvalidOfferAmount
	}

	tradeIn, err := s.tradeInRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if !tradeIn.Status.CanTransition(model.TradeInOfferMade) {
		return nil, ErrInvalidTransition
	}

	validUntil := time.Now().Add(model.TradeInOfferValidity)
	tradeIn.Status = model.TradeInOfferMade
	tradeIn.OfferAmount = &amount
	tradeIn.OfferValidUntil = &validUntil

	if err := s.tradeInRepo.Update(tradeIn); err != nil {
		logger.Error("Failed to record trade-in offer", err, map[string]interface{}{
			"trade_in_id": id,
		})
		return nil, err
	}

	logger.Info("Trade-in offer made", map[string]interface{}{
		"trade_in_id": id,
		"amount":      amount,
		"valid_until": validUntil,
	})
	return tradeIn, nil
}

func (s *tradeInService) DeleteTradeIn(id uint) error {
	if err := s.tradeInRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}
