package repository

import (
	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

type TradeInRepository interface {
	Create(tradeIn *model.TradeIn) error
	FindAll() ([]model.TradeIn, error)
	FindByID(id uint) (*model.TradeIn, error)
	FindByCustomerID(customerID uint) ([]model.TradeIn, error)
	Update(tradeIn *model.TradeIn) error
	Delete(id uint) error
}

type tradeInRepository struct {
	db *gorm.DB
}

func NewTradeInRepository(db *gorm.DB) TradeInRepository {
	return &tradeInRepository{db: db}
}

func (r *tradeInRepository) Create(tradeIn *model.TradeIn) error {
	logger.Debug("Creating trade-in in database", map[string]interface{}{
		"customer_id":   tradeIn.CustomerID,
		"vehicle_make":  tradeIn.VehicleMake,
		"vehicle_model": tradeIn.VehicleModel,
	})

	if err := r.db.Create(tradeIn).Error; err != nil {
		logger.Error("Failed to create trade-in in database", err, map[string]interface{}{
			"customer_id": tradeIn.CustomerID,
		})
		return err
	}

	logger.Debug("Trade-in created in database", map[string]interface{}{
		"trade_in_id": tradeIn.ID,
	})
	return nil
}

func (r *tradeInRepository) FindAll() ([]model.TradeIn, error) {
	var tradeIns []model.TradeIn
	if err := r.db.Order("created_at DESC").Find(&tradeIns).Error; err != nil {
		logger.Error("Failed to find trade-ins in database", err, nil)
		return nil, err
	}
	return tradeIns, nil
}

func (r *tradeInRepository) FindByID(id uint) (*model.TradeIn, error) {
	var tradeIn model.TradeIn
	if err := r.db.First(&tradeIn, id).Error; err != nil {
		logger.Error("Failed to find trade-in by ID in database", err, map[string]interface{}{
			"trade_in_id": id,
		})
		return nil, err
	}
	return &tradeIn, nil
}

func (r *tradeInRepository) FindByCustomerID(customerID uint) ([]model.TradeIn, error) {
	var tradeIns []model.TradeIn
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&tradeIns).Error; err != nil {
		logger.Error("Failed to find trade-ins by customer in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return tradeIns, nil
}

// Update saves the full record; status, offer amount and offer validity are
// written together when an offer is made.
func (r *tradeInRepository) Update(tradeIn *model.TradeIn) error {
	if err := r.db.Save(tradeIn).Error; err != nil {
		logger.Error("Failed to update trade-in in database", err, map[string]interface{}{
			"trade_in_id": tradeIn.ID,
		})
		return err
	}
	return nil
}

func (r *tradeInRepository) Delete(id uint) error {
	result := r.db.Delete(&model.TradeIn{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete trade-in from database", result.Error, map[string]interface{}{
			"trade_in_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
