package service

import (
	"errors"
	"strings"
	"time"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidEmail     = errors.New("invalid email address")
)

// CustomerExtra carries the optional fields accepted on first contact. They
// are applied only when a new record is created; an existing record is
// returned untouched (first-write-wins identity).
type CustomerExtra struct {
	Source  string
	Status  model.CustomerStatus
	Address string
	City    string
	State   string
	ZipCode string
	Notes   string
}

type CustomerService interface {
	GetAllCustomers() ([]model.Customer, error)
	GetCustomerByID(id uint) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	GetOrCreate(firstName, lastName, email, phone string, extra *CustomerExtra) (*model.Customer, error)
	RecordPurchase(customerID uint, purchase *model.Purchase) error
	LinkActivity(customerID uint, kind model.ActivityKind, activityID uint) error
	UpdateCustomer(customer *model.Customer) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	db           *gorm.DB
}

func NewCustomerService(customerRepo repository.CustomerRepository, db *gorm.DB) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		db:           db,
	}
}

// NormalizeEmail trims whitespace and lowercases the address. Every email
// compared or stored by the directory goes through this first, so lookups
// are effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetCustomerByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) FindByEmail(email string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetOrCreate resolves a customer by email, creating a lead record on first
// contact. When the email already exists the stored record wins: name, phone
// and extra fields from this call are discarded, not merged.
func (s *customerService) GetOrCreate(firstName, lastName, email, phone string, extra *CustomerExtra) (*model.Customer, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	existing, err := s.customerRepo.FindByEmail(email)
	if err == nil {
		logger.Debug("Customer resolved by email", map[string]interface{}{
			"customer_id": existing.ID,
			"email":       email,
		})
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to resolve customer by email", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	source := model.SourceWalkIn
	status := model.CustomerStatusLead
	customer := &model.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Sources:   model.StringArray{},
		Tags:      model.StringArray{},
	}
	if extra != nil {
		if extra.Source != "" {
			source = extra.Source
		}
		if extra.Status != "" {
			status = extra.Status
		}
		customer.Address = extra.Address
		customer.City = extra.City
		customer.State = extra.State
		customer.ZipCode = extra.ZipCode
		customer.Notes = extra.Notes
	}
	customer.Status = status
	customer.Sources = customer.Sources.Append(source)

	if err := s.customerRepo.Create(customer); err != nil {
		logger.Error("Failed to create customer", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Customer created", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       email,
		"source":      source,
	})
	return customer, nil
}

// RecordPurchase appends an immutable purchase entry and updates the
// customer's aggregates in the same transaction, keeping
// total_purchases == len(purchases) and total_spent == sum(sale_price).
func (s *customerService) RecordPurchase(customerID uint, purchase *model.Purchase) error {
	logger.Info("Recording purchase", map[string]interface{}{
		"customer_id": customerID,
		"vehicle_id":  purchase.VehicleID,
		"sale_price":  purchase.SalePrice,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var customer model.Customer
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&customer, customerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Purchase rejected: customer not found", map[string]interface{}{
				"customer_id": customerID,
			})
			return ErrCustomerNotFound
		}
		logger.Error("Failed to load customer for purchase", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	purchase.CustomerID = customerID
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now()
	}

	if err := tx.Create(purchase).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to insert purchase", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	now := time.Now()
	customer.TotalPurchases++
	customer.TotalSpent += purchase.SalePrice
	customer.Sources = customer.Sources.Append(model.SourcePurchase)
	customer.Status = model.CustomerStatusActive
	customer.LastContactDate = &now

	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update customer aggregates", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit purchase transaction", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	logger.Info("Purchase recorded", map[string]interface{}{
		"customer_id":     customerID,
		"purchase_id":     purchase.ID,
		"total_purchases": customer.TotalPurchases,
		"total_spent":     customer.TotalSpent,
	})
	return nil
}

// LinkActivity tags the customer with the activity's acquisition source and
// stamps the last contact date. The activity row itself already carries the
// customer id, so the relational link exists as soon as the row is inserted;
// this records the CRM-side bookkeeping.
func (s *customerService) LinkActivity(customerID uint, kind model.ActivityKind, activityID uint) error {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	var source string
	switch kind {
	case model.ActivityTestDrive:
		source = model.SourceTestDrive
	case model.ActivityTradeIn:
		source = model.SourceTradeIn
	case model.ActivityFinancing:
		source = model.SourceFinancing
	default:
		source = model.SourceWalkIn
	}

	now := time.Now()
	customer.Sources = customer.Sources.Append(source)
	customer.LastContactDate = &now

	if err := s.customerRepo.Update(customer); err != nil {
		return err
	}

	logger.Debug("Activity linked to customer", map[string]interface{}{
		"customer_id": customerID,
		"kind":        kind,
		"activity_id": activityID,
	})
	return nil
}

func (s *customerService) UpdateCustomer(customer *model.Customer) error {
	if _, err := s.customerRepo.FindByID(customer.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	customer.Email = NormalizeEmail(customer.Email)
	return s.customerRepo.Update(customer)
}
