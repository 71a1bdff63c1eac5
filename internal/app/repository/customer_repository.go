package repository

import (
	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uint) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	Update(customer *model.Customer) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) preloadCustomer() *gorm.DB {
	return r.db.
		Preload("Purchases", func(db *gorm.DB) *gorm.DB {
			return db.Order("purchases.created_at ASC")
		}).
		Preload("TestDrives").
		Preload("TradeIns").
		Preload("FinancingApplications")
}

func (r *customerRepository) Create(customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"email":  customer.Email,
		"status": customer.Status,
	})

	if err := r.db.Create(customer).Error; err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"email": customer.Email,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return nil
}

func (r *customerRepository) FindAll() ([]model.Customer, error) {
	logger.Debug("Finding all customers in database", nil)

	var customers []model.Customer
	if err := r.preloadCustomer().Order("created_at DESC").Find(&customers).Error; err != nil {
		logger.Error("Failed to find customers in database", err, nil)
		return nil, err
	}

	logger.Debug("Customers found in database", map[string]interface{}{
		"count": len(customers),
	})
	return customers, nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	logger.Debug("Finding customer by ID in database", map[string]interface{}{
		"customer_id": id,
	})

	var customer model.Customer
	if err := r.preloadCustomer().First(&customer, id).Error; err != nil {
		logger.Error("Failed to find customer by ID in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}
	return &customer, nil
}

// FindByEmail does an exact-match lookup; callers are responsible for
// normalizing the email first.
func (r *customerRepository) FindByEmail(email string) (*model.Customer, error) {
	logger.Debug("Finding customer by email in database", map[string]interface{}{
		"email": email,
	})

	var customer model.Customer
	if err := r.preloadCustomer().Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
		"status":      customer.Status,
	})

	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}
