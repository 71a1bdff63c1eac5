package repository

import (
	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

type FinancingRepository interface {
	Create(application *model.FinancingApplication) error
	FindAll() ([]model.FinancingApplication, error)
	FindByID(id uint) (*model.FinancingApplication, error)
	FindByCustomerID(customerID uint) ([]model.FinancingApplication, error)
	Update(application *model.FinancingApplication) error
	UpdateStatus(id uint, status model.FinancingStatus) error
	Delete(id uint) error
}

type financingRepository struct {
	db *gorm.DB
}

func NewFinancingRepository(db *gorm.DB) FinancingRepository {
	return &financingRepository{db: db}
}

func (r *financingRepository) Create(application *model.FinancingApplication) error {
	logger.Debug("Creating financing application in database", map[string]interface{}{
		"customer_id": application.CustomerID,
		"loan_amount": application.LoanAmount,
	})

	if err := r.db.Create(application).Error; err != nil {
		logger.Error("Failed to create financing application in database", err, map[string]interface{}{
			"customer_id": application.CustomerID,
		})
		return err
	}

	logger.Debug("Financing application created in database", map[string]interface{}{
		"application_id": application.ID,
	})
	return nil
}

func (r *financingRepository) FindAll() ([]model.FinancingApplication, error) {
	var applications []model.FinancingApplication
	if err := r.db.Order("created_at DESC").Find(&applications).Error; err != nil {
		logger.Error("Failed to find financing applications in database", err, nil)
		return nil, err
	}
	return applications, nil
}

func (r *financingRepository) FindByID(id uint) (*model.FinancingApplication, error) {
	var application model.FinancingApplication
	if err := r.db.First(&application, id).Error; err != nil {
		logger.Error("Failed to find financing application by ID in database", err, map[string]interface{}{
			"application_id": id,
		})
		return nil, err
	}
	return &application, nil
}

func (r *financingRepository) FindByCustomerID(customerID uint) ([]model.FinancingApplication, error) {
	var applications []model.FinancingApplication
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&applications).Error; err != nil {
		logger.Error("Failed to find financing applications by customer in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return applications, nil
}

func (r *financingRepository) Update(application *model.FinancingApplication) error {
	if err := r.db.Save(application).Error; err != nil {
		logger.Error("Failed to update financing application in database", err, map[string]interface{}{
			"application_id": application.ID,
		})
		return err
	}
	return nil
}

func (r *financingRepository) UpdateStatus(id uint, status model.FinancingStatus) error {
	result := r.db.Model(&model.FinancingApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update financing application status in database", result.Error, map[string]interface{}{
			"application_id": id,
			"status":         status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.Debug("Financing application status updated in database", map[string]interface{}{
		"application_id": id,
		"status":         status,
	})
	return nil
}

func (r *financingRepository) Delete(id uint) error {
	result := r.db.Delete(&model.FinancingApplication{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete financing application from database", result.Error, map[string]interface{}{
			"application_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
