package repository

import (
	"errors"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a flag write targets a row that no longer
// exists at write time.
var ErrNotFound = errors.New("record not found")

type VehicleFilter struct {
	Condition  *model.VehicleCondition
	Make       string
	InStock    *bool
	Sold       *bool
	IsFeatured *bool
	Search     string
}

type VehicleRepository interface {
	Create(vehicle *model.Vehicle) error
	BulkCreate(vehicles []model.Vehicle, batchSize int) error
	FindAll() ([]model.Vehicle, error)
	FindWithFilter(filter VehicleFilter) ([]model.Vehicle, error)
	FindByID(id uint) (*model.Vehicle, error)
	Update(vehicle *model.Vehicle) error
	Delete(id uint) error
	SetInStock(id uint, inStock bool) error
	SetSold(id uint, sold bool) error
	SetFeatured(id uint, featured bool) error
	IncrementViewCount(id uint) error
	IncrementDaysOnLot() (int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(vehicle *model.Vehicle) error {
	logger.Debug("Creating vehicle in database", map[string]interface{}{
		"vin":   vehicle.VIN,
		"make":  vehicle.Make,
		"model": vehicle.Model,
		"year":  vehicle.Year,
	})

	if err := r.db.Create(vehicle).Error; err != nil {
		logger.Error("Failed to create vehicle in database", err, map[string]interface{}{
			"vin":  vehicle.VIN,
			"make": vehicle.Make,
		})
		return err
	}

	logger.Debug("Vehicle created in database", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})
	return nil
}

func (r *vehicleRepository) BulkCreate(vehicles []model.Vehicle, batchSize int) error {
	logger.Info("Bulk creating vehicles in database", map[string]interface{}{
		"count":      len(vehicles),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(vehicles, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create vehicles in database", err, map[string]interface{}{
			"count": len(vehicles),
		})
		return err
	}
	return nil
}

func (r *vehicleRepository) FindAll() ([]model.Vehicle, error) {
	return r.FindWithFilter(VehicleFilter{})
}

func (r *vehicleRepository) FindWithFilter(filter VehicleFilter) ([]model.Vehicle, error) {
	logger.Debug("Finding vehicles with filter", map[string]interface{}{
		"condition": filter.Condition,
		"make":      filter.Make,
		"in_stock":  filter.InStock,
		"sold":      filter.Sold,
		"featured":  filter.IsFeatured,
		"search":    filter.Search,
	})

	query := r.db.Model(&model.Vehicle{})

	if filter.Condition != nil {
		query = query.Where("condition = ?", *filter.Condition)
	}
	if filter.Make != "" {
		query = query.Where("make = ?", filter.Make)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if filter.Sold != nil {
		query = query.Where("sold = ?", *filter.Sold)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("make LIKE ? OR model LIKE ? OR vin LIKE ?", like, like, like)
	}

	// Newest intake first; callers receive the full set.
	var vehicles []model.Vehicle
	if err := query.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		logger.Error("Failed to find vehicles with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Vehicles found with filter", map[string]interface{}{
		"count": len(vehicles),
	})
	return vehicles, nil
}

func (r *vehicleRepository) FindByID(id uint) (*model.Vehicle, error) {
	logger.Debug("Finding vehicle by ID in database", map[string]interface{}{
		"vehicle_id": id,
	})

	var vehicle model.Vehicle
	if err := r.db.First(&vehicle, id).Error; err != nil {
		logger.Error("Failed to find vehicle by ID in database", err, map[string]interface{}{
			"vehicle_id": id,
		})
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(vehicle *model.Vehicle) error {
	logger.Debug("Updating vehicle in database", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	if err := r.db.Save(vehicle).Error; err != nil {
		logger.Error("Failed to update vehicle in database", err, map[string]interface{}{
			"vehicle_id": vehicle.ID,
		})
		return err
	}
	return nil
}

func (r *vehicleRepository) Delete(id uint) error {
	logger.Debug("Deleting vehicle from database", map[string]interface{}{
		"vehicle_id": id,
	})

	result := r.db.Delete(&model.Vehicle{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete vehicle from database", result.Error, map[string]interface{}{
			"vehicle_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.Debug("Vehicle deleted from database", map[string]interface{}{
		"vehicle_id": id,
	})
	return nil
}

func (r *vehicleRepository) setFlag(id uint, column string, value bool) error {
	result := r.db.Model(&model.Vehicle{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		logger.Error("Failed to update vehicle flag in database", result.Error, map[string]interface{}{
			"vehicle_id": id,
			"column":     column,
			"value":      value,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		logger.Warn("Vehicle flag update matched no rows", map[string]interface{}{
			"vehicle_id": id,
			"column":     column,
		})
		return ErrNotFound
	}

	logger.Debug("Vehicle flag updated in database", map[string]interface{}{
		"vehicle_id": id,
		"column":     column,
		"value":      value,
	})
	return nil
}

func (r *vehicleRepository) SetInStock(id uint, inStock bool) error {
	return r.setFlag(id, "in_stock", inStock)
}

func (r *vehicleRepository) SetSold(id uint, sold bool) error {
	return r.setFlag(id, "sold", sold)
}

func (r *vehicleRepository) SetFeatured(id uint, featured bool) error {
	return r.setFlag(id, "is_featured", featured)
}

func (r *vehicleRepository) IncrementViewCount(id uint) error {
	result := r.db.Model(&model.Vehicle{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to increment vehicle view count in database", result.Error, map[string]interface{}{
			"vehicle_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDaysOnLot bumps the lot counter for every unsold in-stock vehicle.
// Called once per day by the scheduler.
func (r *vehicleRepository) IncrementDaysOnLot() (int64, error) {
	result := r.db.Model(&model.Vehicle{}).
		Where("in_stock = ? AND sold = ?", true, false).
		Update("days_on_lot", gorm.Expr("days_on_lot + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to increment days on lot in database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Days on lot incremented in database", map[string]interface{}{
		"vehicles_updated": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
