package repository

import (
	"testing"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVehicleRepositoryTest(t *testing.T) (VehicleRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewVehicleRepository(testDB), testDB
}

func seedVehicle(t *testing.T, testDB *gorm.DB, vin string, mutate func(*model.Vehicle)) *model.Vehicle {
	vehicle := &model.Vehicle{
		VIN:       vin,
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Mileage:   32000,
		Condition: model.ConditionUsed,
		InStock:   true,
	}
	if mutate != nil {
		mutate(vehicle)
	}
	require.NoError(t, testDB.Create(vehicle).Error)
	return vehicle
}

func TestVehicleRepository_CreateAndFind(t *testing.T) {
	repo, _ := setupVehicleRepositoryTest(t)

	vehicle := &model.Vehicle{
		VIN:       "4T1BF1FK5HU123456",
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Condition: model.ConditionCertified,
		Features:  model.StringArray{"sunroof", "heated seats"},
		InStock:   true,
	}
	require.NoError(t, repo.Create(vehicle))
	assert.NotZero(t, vehicle.ID)

	found, err := repo.FindByID(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "4T1BF1FK5HU123456", found.VIN)
	assert.Equal(t, model.ConditionCertified, found.Condition)
	assert.Equal(t, model.StringArray{"sunroof", "heated seats"}, found.Features)
}

// An off-lot intake must round-trip with in_stock=false; a gorm default tag
// on the column would silently drop the zero value from the insert.
func TestVehicleRepository_Create_PersistsOffLotFlag(t *testing.T) {
	repo, _ := setupVehicleRepositoryTest(t)

	vehicle := &model.Vehicle{
		VIN:       "1HGCM82633A004352",
		Year:      2019,
		Make:      "Honda",
		Model:     "Accord",
		Price:     18000,
		Condition: model.ConditionUsed,
		InStock:   false,
	}
	require.NoError(t, repo.Create(vehicle))

	found, err := repo.FindByID(vehicle.ID)
	require.NoError(t, err)
	assert.False(t, found.InStock)
}

func TestVehicleRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupVehicleRepositoryTest(t)

	_, err := repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVehicleRepository_FindWithFilter(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	seedVehicle(t, testDB, "4T1BF1FK5HU123456", nil)
	seedVehicle(t, testDB, "1HGCM82633A004352", func(v *model.Vehicle) {
		v.Make = "Honda"
		v.Model = "Accord"
		v.Condition = model.ConditionNew
		v.IsFeatured = true
	})
	seedVehicle(t, testDB, "2C3KA63H76H123456", func(v *model.Vehicle) {
		v.Make = "Chrysler"
		v.Model = "300C"
		v.Sold = true
		v.InStock = false
	})

	all, err := repo.FindWithFilter(VehicleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cond := model.ConditionNew
	vehicles, err := repo.FindWithFilter(VehicleFilter{Condition: &cond})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Honda", vehicles[0].Make)

	truthy := true
	vehicles, err = repo.FindWithFilter(VehicleFilter{IsFeatured: &truthy})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "1HGCM82633A004352", vehicles[0].VIN)

	vehicles, err = repo.FindWithFilter(VehicleFilter{Sold: &truthy})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Chrysler", vehicles[0].Make)

	vehicles, err = repo.FindWithFilter(VehicleFilter{Search: "300"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "300C", vehicles[0].Model)
}

func TestVehicleRepository_SetFlags(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	vehicle := seedVehicle(t, testDB, "4T1BF1FK5HU123456", nil)

	require.NoError(t, repo.SetSold(vehicle.ID, true))
	require.NoError(t, repo.SetInStock(vehicle.ID, false))
	require.NoError(t, repo.SetFeatured(vehicle.ID, true))

	found, err := repo.FindByID(vehicle.ID)
	require.NoError(t, err)
	assert.True(t, found.Sold)
	assert.False(t, found.InStock)
	assert.True(t, found.IsFeatured)

	assert.ErrorIs(t, repo.SetSold(9999, true), ErrNotFound)
	assert.ErrorIs(t, repo.SetInStock(9999, false), ErrNotFound)
	assert.ErrorIs(t, repo.SetFeatured(9999, true), ErrNotFound)
}

func TestVehicleRepository_IncrementViewCount(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	vehicle := seedVehicle(t, testDB, "4T1BF1FK5HU123456", nil)

	require.NoError(t, repo.IncrementViewCount(vehicle.ID))
	require.NoError(t, repo.IncrementViewCount(vehicle.ID))
	require.NoError(t, repo.IncrementViewCount(vehicle.ID))

	found, err := repo.FindByID(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.ViewCount)

	assert.ErrorIs(t, repo.IncrementViewCount(9999), ErrNotFound)
}

func TestVehicleRepository_IncrementDaysOnLot(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	onLot := seedVehicle(t, testDB, "4T1BF1FK5HU123456", nil)
	sold := seedVehicle(t, testDB, "1HGCM82633A004352", func(v *model.Vehicle) {
		v.Sold = true
	})
	offLot := seedVehicle(t, testDB, "2C3KA63H76H123456", func(v *model.Vehicle) {
		v.InStock = false
	})

	updated, err := repo.IncrementDaysOnLot()
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	found, err := repo.FindByID(onLot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.DaysOnLot)

	// Sold and off-lot vehicles do not accrue days.
	found, err = repo.FindByID(sold.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.DaysOnLot)

	found, err = repo.FindByID(offLot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.DaysOnLot)
}

func TestVehicleRepository_BulkCreate(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	vehicles := []model.Vehicle{
		{VIN: "4T1BF1FK5HU123456", Year: 2021, Make: "Toyota", Model: "Camry", Price: 25000, InStock: true},
		{VIN: "1HGCM82633A004352", Year: 2019, Make: "Honda", Model: "Accord", Price: 18000, InStock: true},
		{VIN: "2C3KA63H76H123456", Year: 2016, Make: "Chrysler", Model: "300C", Price: 14000, InStock: true},
	}
	require.NoError(t, repo.BulkCreate(vehicles, 2))

	var count int64
	testDB.Model(&model.Vehicle{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestVehicleRepository_Delete(t *testing.T) {
	repo, testDB := setupVehicleRepositoryTest(t)

	vehicle := seedVehicle(t, testDB, "4T1BF1FK5HU123456", nil)

	require.NoError(t, repo.Delete(vehicle.ID))
	assert.ErrorIs(t, repo.Delete(vehicle.ID), ErrNotFound)
}
