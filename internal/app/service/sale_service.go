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

// ErrPartialSale is returned when the purchase and customer aggregates were
// committed but flipping the vehicle's sold flag failed. The sale is not
// rolled back; a reconciliation task records the vehicle still pending.
var ErrPartialSale = errors.New("sale recorded but vehicle not marked sold")

type SaleRequest struct {
	VehicleID    uint
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	SalePrice    float64
	DownPayment  float64
	TradeInValue float64
	Notes        string
}

type SaleResult struct {
	Customer *model.Customer `json:"customer"`
	Purchase *model.Purchase `json:"purchase"`
}

type SaleService interface {
	CompleteSale(req SaleRequest) (*SaleResult, error)
	OpenReconciliationTasks() ([]model.ReconciliationTask, error)
	ResolveReconciliationTask(id uint) error
}

type saleService struct {
	vehicleRepo repository.VehicleRepository
	reconRepo   repository.ReconciliationRepository
	customerSvc CustomerService
	notifier    Notifier
}

func NewSaleService(vehicleRepo repository.VehicleRepository, reconRepo repository.ReconciliationRepository, customerSvc CustomerService, notifier Notifier) SaleService {
	return &saleService{
		vehicleRepo: vehicleRepo,
		reconRepo:   reconRepo,
		customerSvc: customerSvc,
		notifier:    notifier,
	}
}

// CompleteSale runs the sale steps in order: resolve the customer, build the
// purchase entry, record it together with the customer aggregates, then mark
// the vehicle sold. The workflow is not idempotent: calling it twice for the
// same vehicle appends two purchase entries and double-counts the spend.
// Callers must check the vehicle's sold flag before invoking it.
func (s *saleService) CompleteSale(req SaleRequest) (*SaleResult, error) {
	vehicle, err := s.vehicleRepo.FindByID(req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		logger.Error("Failed to load vehicle for sale", err, map[string]interface{}{
			"vehicle_id": req.VehicleID,
		})
		return nil, err
	}

	customer, err := s.customerSvc.GetOrCreate(req.FirstName, req.LastName, req.Email, req.Phone, &CustomerExtra{
		Source:  model.SourcePurchase,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	})
	if err != nil {
		return nil, err
	}

	financed := req.SalePrice - req.DownPayment - req.TradeInValue
	if financed < 0 {
		financed = 0
	}
	purchase := &model.Purchase{
		CustomerID:     customer.ID,
		VehicleID:      vehicle.ID,
		VehicleName:    vehicle.DisplayName(),
		VIN:            vehicle.VIN,
		PurchaseDate:   time.Now(),
		SalePrice:      req.SalePrice,
		DownPayment:    req.DownPayment,
		FinancedAmount: financed,
		TradeInValue:   req.TradeInValue,
		Notes:          req.Notes,
	}

	if err := s.customerSvc.RecordPurchase(customer.ID, purchase); err != nil {
		return nil, err
	}

	// RecordPurchase changed the aggregates; return the stored state rather
	// than the pre-purchase snapshot.
	if fresh, err := s.customerSvc.GetCustomerByID(customer.ID); err == nil {
		customer = fresh
	}

	if err := s.vehicleRepo.SetSold(vehicle.ID, true); err != nil {
		logger.Error("Sale recorded but vehicle flag update failed", err, map[string]interface{}{
			"vehicle_id":  vehicle.ID,
			"customer_id": customer.ID,
			"purchase_id": purchase.ID,
		})
		task := &model.ReconciliationTask{
			VehicleID:  vehicle.ID,
			CustomerID: customer.ID,
			PurchaseID: purchase.ID,
			Reason:     fmt.Sprintf("vehicle %d not marked sold: %v", vehicle.ID, err),
			Status:     model.ReconciliationOpen,
		}
		if taskErr := s.reconRepo.Create(task); taskErr != nil {
			logger.Error("Failed to file reconciliation task", taskErr, map[string]interface{}{
				"vehicle_id": vehicle.ID,
			})
		}
		return &SaleResult{Customer: customer, Purchase: purchase}, ErrPartialSale
	}

	logger.Info("Sale completed", map[string]interface{}{
		"vehicle_id":  vehicle.ID,
		"customer_id": customer.ID,
		"purchase_id": purchase.ID,
		"sale_price":  req.SalePrice,
	})

	if s.notifier != nil {
		go s.notifySale(vehicle, customer, req.SalePrice)
	}

	return &SaleResult{Customer: customer, Purchase: purchase}, nil
}

func (s *saleService) notifySale(vehicle *model.Vehicle, customer *model.Customer, salePrice float64) {
	msg := fmt.Sprintf("Sold: %s (VIN %s) to %s for $%.2f",
		vehicle.DisplayName(), vehicle.VIN, customer.FullName(), salePrice)
	if err := s.notifier.NotifyStaff(msg); err != nil {
		logger.Warn("Failed to send sale notification", map[string]interface{}{
			"vehicle_id": vehicle.ID,
			"error":      err.Error(),
		})
	}
}

func (s *saleService) OpenReconciliationTasks() ([]model.ReconciliationTask, error) {
	return s.reconRepo.FindOpen()
}

func (s *saleService) ResolveReconciliationTask(id uint) error {
	task, err := s.reconRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrNotFound
		}
		return err
	}

	// Finish the interrupted step before closing the task.
	if err := s.vehicleRepo.SetSold(task.VehicleID, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.reconRepo.Resolve(id); err != nil {
		return err
	}
	logger.Info("Reconciliation task resolved", map[string]interface{}{
		"task_id":    id,
		"vehicle_id": task.VehicleID,
	})
	return nil
}
