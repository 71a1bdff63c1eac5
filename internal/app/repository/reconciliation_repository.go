package repository

import (
	"time"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReconciliationRepository interface {
	Create(task *model.ReconciliationTask) error
	FindOpen() ([]model.ReconciliationTask, error)
	FindByID(id uint) (*model.ReconciliationTask, error)
	Resolve(id uint) error
}

type reconciliationRepository struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(task *model.ReconciliationTask) error {
	logger.Debug("Creating reconciliation task in database", map[string]interface{}{
		"vehicle_id":  task.VehicleID,
		"customer_id": task.CustomerID,
		"purchase_id": task.PurchaseID,
	})

	if err := r.db.Create(task).Error; err != nil {
		logger.Error("Failed to create reconciliation task in database", err, map[string]interface{}{
			"vehicle_id": task.VehicleID,
		})
		return err
	}
	return nil
}

func (r *reconciliationRepository) FindOpen() ([]model.ReconciliationTask, error) {
	var tasks []model.ReconciliationTask
	if err := r.db.Where("status = ?", model.ReconciliationOpen).
		Order("created_at ASC").Find(&tasks).Error; err != nil {
		logger.Error("Failed to find open reconciliation tasks in database", err, nil)
		return nil, err
	}
	return tasks, nil
}

func (r *reconciliationRepository) FindByID(id uint) (*model.ReconciliationTask, error) {
	var task model.ReconciliationTask
	if err := r.db.First(&task, id).Error; err != nil {
		logger.Error("Failed to find reconciliation task in database", err, map[string]interface{}{
			"task_id": id,
		})
		return nil, err
	}
	return &task, nil
}

func (r *reconciliationRepository) Resolve(id uint) error {
	now := time.Now()
	result := r.db.Model(&model.ReconciliationTask{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      model.ReconciliationResolved,
			"resolved_at": &now,
		})
	if result.Error != nil {
		logger.Error("Failed to resolve reconciliation task in database", result.Error, map[string]interface{}{
			"task_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.Debug("Reconciliation task resolved in database", map[string]interface{}{
		"task_id": id,
	})
	return nil
}
