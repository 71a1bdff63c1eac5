package service

import (
	"errors"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/autolot/dealership-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidVIN         = errors.New("invalid VIN")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrNegativeMileage    = errors.New("mileage must not be negative")
	ErrSoldViaSaleOnly    = errors.New("vehicles are marked sold through the sale workflow")
	ErrVehicleAlreadySold = errors.New("vehicle already sold")
)

type VehicleListOptions struct {
	Condition *model.VehicleCondition
	Make      string
	InStock   *bool
	Sold      *bool
	Featured  *bool
	Search    string
}

// InventoryAggregates summarizes the current lot. Averages over an empty
// set are zero, not NaN.
type InventoryAggregates struct {
	TotalVehicles    int     `json:"total_vehicles"`
	InStock          int     `json:"in_stock"`
	Sold             int     `json:"sold"`
	TotalValue       float64 `json:"total_value"`
	AveragePrice     float64 `json:"average_price"`
	AverageMileage   float64 `json:"average_mileage"`
	AverageDaysOnLot float64 `json:"average_days_on_lot"`
}

type VehicleService interface {
	ListVehicles(opts VehicleListOptions) ([]model.Vehicle, error)
	GetVehicleByID(id uint) (*model.Vehicle, error)
	CreateVehicle(vehicle *model.Vehicle) error
	UpdateVehicle(vehicle *model.Vehicle) error
	DeleteVehicle(id uint) error
	SetInStock(id uint, inStock bool) error
	SetSold(id uint, sold bool) error
	SetFeatured(id uint, featured bool) error
	RecordView(id uint) error
	Aggregates() (*InventoryAggregates, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) ListVehicles(opts VehicleListOptions) ([]model.Vehicle, error) {
	logger.Debug("Listing vehicles", map[string]interface{}{
		"condition": opts.Condition,
		"make":      opts.Make,
		"in_stock":  opts.InStock,
		"sold":      opts.Sold,
		"search":    opts.Search,
	})

	filter := repository.VehicleFilter{
		Condition:  opts.Condition,
		Make:       opts.Make,
		InStock:    opts.InStock,
		Sold:       opts.Sold,
		IsFeatured: opts.Featured,
		Search:     opts.Search,
	}

	vehicles, err := s.vehicleRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list vehicles", err)
		return nil, err
	}
	return vehicles, nil
}

func (s *vehicleService) GetVehicleByID(id uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		logger.Error("Failed to get vehicle", err, map[string]interface{}{
			"vehicle_id": id,
		})
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) CreateVehicle(vehicle *model.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		logger.Warn("Vehicle rejected by validation", map[string]interface{}{
			"vin":   vehicle.VIN,
			"error": err.Error(),
		})
		return err
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		logger.Error("Failed to create vehicle", err, map[string]interface{}{
			"vin": vehicle.VIN,
		})
		return err
	}

	logger.Info("Vehicle added to inventory", map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"vin":        vehicle.VIN,
		"name":       vehicle.DisplayName(),
	})
	return nil
}

func (s *vehicleService) UpdateVehicle(vehicle *model.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	if _, err := s.vehicleRepo.FindByID(vehicle.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return s.vehicleRepo.Update(vehicle)
}

func (s *vehicleService) DeleteVehicle(id uint) error {
	if err := s.vehicleRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	logger.Info("Vehicle removed from inventory", map[string]interface{}{
		"vehicle_id": id,
	})
	return nil
}

func (s *vehicleService) SetInStock(id uint, inStock bool) error {
	if err := s.vehicleRepo.SetInStock(id, inStock); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

// SetSold only accepts clearing the flag. Marking a vehicle sold happens
// inside the sale workflow so the purchase record and customer aggregates
// cannot drift from inventory.
func (s *vehicleService) SetSold(id uint, sold bool) error {
	if sold {
		return ErrSoldViaSaleOnly
	}
	if err := s.vehicleRepo.SetSold(id, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	logger.Info("Vehicle sold flag cleared", map[string]interface{}{
		"vehicle_id": id,
	})
	return nil
}

func (s *vehicleService) SetFeatured(id uint, featured bool) error {
	if err := s.vehicleRepo.SetFeatured(id, featured); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

func (s *vehicleService) RecordView(id uint) error {
	if err := s.vehicleRepo.IncrementViewCount(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

func (s *vehicleService) Aggregates() (*InventoryAggregates, error) {
	vehicles, err := s.vehicleRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load vehicles for aggregates", err)
		return nil, err
	}
	agg := ComputeAggregates(vehicles)
	return &agg, nil
}

// ComputeAggregates is a pure summary over a vehicle slice. Averages are
// taken over all vehicles; stock counts and total value only reflect
// vehicles currently on the lot.
func ComputeAggregates(vehicles []model.Vehicle) InventoryAggregates {
	agg := InventoryAggregates{TotalVehicles: len(vehicles)}
	if len(vehicles) == 0 {
		return agg
	}

	var priceSum, mileageSum, daysSum float64
	for i := range vehicles {
		v := &vehicles[i]
		priceSum += v.Price
		mileageSum += float64(v.Mileage)
		daysSum += float64(v.DaysOnLot)
		if v.Sold {
			agg.Sold++
			continue
		}
		if v.InStock {
			agg.InStock++
			agg.TotalValue += v.Price
		}
	}

	n := float64(len(vehicles))
	agg.AveragePrice = priceSum / n
	agg.AverageMileage = mileageSum / n
	agg.AverageDaysOnLot = daysSum / n
	return agg
}

func validateVehicle(vehicle *model.Vehicle) error {
	if vehicle.VIN != "" && !util.IsValidVIN(vehicle.VIN) {
		return ErrInvalidVIN
	}
	if vehicle.Price < 0 {
		return ErrNegativePrice
	}
	if vehicle.Mileage < 0 {
		return ErrNegativeMileage
	}
	return nil
}
