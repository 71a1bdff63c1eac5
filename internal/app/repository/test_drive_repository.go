package repository

import (
	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

type TestDriveRepository interface {
	Create(testDrive *model.TestDrive) error
	FindAll() ([]model.TestDrive, error)
	FindByID(id uint) (*model.TestDrive, error)
	FindByCustomerID(customerID uint) ([]model.TestDrive, error)
	Update(testDrive *model.TestDrive) error
	UpdateStatus(id uint, status model.TestDriveStatus) error
	Delete(id uint) error
}

type testDriveRepository struct {
	db *gorm.DB
}

func NewTestDriveRepository(db *gorm.DB) TestDriveRepository {
	return &testDriveRepository{db: db}
}

func (r *testDriveRepository) Create(testDrive *model.TestDrive) error {
	logger.Debug("Creating test drive in database", map[string]interface{}{
		"customer_id": testDrive.CustomerID,
		"vehicle_id":  testDrive.VehicleID,
	})

	if err := r.db.Create(testDrive).Error; err != nil {
		logger.Error("Failed to create test drive in database", err, map[string]interface{}{
			"customer_id": testDrive.CustomerID,
		})
		return err
	}

	logger.Debug("Test drive created in database", map[string]interface{}{
		"test_drive_id": testDrive.ID,
	})
	return nil
}

func (r *testDriveRepository) FindAll() ([]model.TestDrive, error) {
	var testDrives []model.TestDrive
	if err := r.db.Order("created_at DESC").Find(&testDrives).Error; err != nil {
		logger.Error("Failed to find test drives in database", err, nil)
		return nil, err
	}
	return testDrives, nil
}

func (r *testDriveRepository) FindByID(id uint) (*model.TestDrive, error) {
	var testDrive model.TestDrive
	if err := r.db.First(&testDrive, id).Error; err != nil {
		logger.Error("Failed to find test drive by ID in database", err, map[string]interface{}{
			"test_drive_id": id,
		})
		return nil, err
	}
	return &testDrive, nil
}

func (r *testDriveRepository) FindByCustomerID(customerID uint) ([]model.TestDrive, error) {
	var testDrives []model.TestDrive
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&testDrives).Error; err != nil {
		logger.Error("Failed to find test drives by customer in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return testDrives, nil
}

func (r *testDriveRepository) Update(testDrive *model.TestDrive) error {
	if err := r.db.Save(testDrive).Error; err != nil {
		logger.Error("Failed to update test drive in database", err, map[string]interface{}{
			"test_drive_id": testDrive.ID,
		})
		return err
	}
	return nil
}

func (r *testDriveRepository) UpdateStatus(id uint, status model.TestDriveStatus) error {
	result := r.db.Model(&model.TestDrive{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update test drive status in database", result.Error, map[string]interface{}{
			"test_drive_id": id,
			"status":        status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.Debug("Test drive status updated in database", map[string]interface{}{
		"test_drive_id": id,
		"status":        status,
	})
	return nil
}

func (r *testDriveRepository) Delete(id uint) error {
	result := r.db.Delete(&model.TestDrive{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete test drive from database", result.Error, map[string]interface{}{
			"test_drive_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
