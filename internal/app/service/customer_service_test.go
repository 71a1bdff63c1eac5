package service

import (
	"testing"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomerServiceTest(t *testing.T) (CustomerService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	customerRepo := repository.NewCustomerRepository(testDB)
	customerService := NewCustomerService(customerRepo, testDB)

	return customerService, testDB
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM  "))
	assert.Equal(t, "jane@example.com", NormalizeEmail("jane@example.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCustomerService_GetOrCreate_CreatesLead(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	customer, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", nil)
	require.NoError(t, err)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Jane", customer.FirstName)
	assert.Equal(t, "jane@example.com", customer.Email)
	assert.Equal(t, model.CustomerStatusLead, customer.Status)
	assert.Contains(t, []string(customer.Sources), model.SourceWalkIn)
	assert.Equal(t, 0, customer.TotalPurchases)
	assert.Equal(t, float64(0), customer.TotalSpent)
}

func TestCustomerService_GetOrCreate_NormalizesEmail(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	created, err := service.GetOrCreate("Jane", "Doe", "  Jane@Example.COM ", "555-0101", nil)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)

	// A differently-cased lookup resolves to the same record.
	found, err := service.GetOrCreate("Jane", "Doe", "JANE@EXAMPLE.COM", "555-0101", nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCustomerService_GetOrCreate_FirstWriteWins(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	first, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", nil)
	require.NoError(t, err)

	// A second contact with a different name and phone returns the stored
	// record untouched.
	second, err := service.GetOrCreate("Janet", "Dough", "jane@example.com", "555-9999", &CustomerExtra{
		Source: model.SourceTradeIn,
		Notes:  "different details",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Jane", second.FirstName)
	assert.Equal(t, "Doe", second.LastName)
	assert.Equal(t, "555-0101", second.Phone)
	assert.Empty(t, second.Notes)
	assert.NotContains(t, []string(second.Sources), model.SourceTradeIn)
}

func TestCustomerService_GetOrCreate_InvalidEmail(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	_, err := service.GetOrCreate("Jane", "Doe", "", "555-0101", nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = service.GetOrCreate("Jane", "Doe", "not-an-email", "555-0101", nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestCustomerService_GetOrCreate_AppliesExtraOnCreate(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	customer, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", &CustomerExtra{
		Source: model.SourceWebsite,
		Status: model.CustomerStatusProspect,
		City:   "Austin",
		State:  "TX",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CustomerStatusProspect, customer.Status)
	assert.Equal(t, "Austin", customer.City)
	assert.Contains(t, []string(customer.Sources), model.SourceWebsite)
}

func TestCustomerService_RecordPurchase_UpdatesAggregates(t *testing.T) {
	service, testDB := setupCustomerServiceTest(t)

	customer, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", nil)
	require.NoError(t, err)

	err = service.RecordPurchase(customer.ID, &model.Purchase{
		VehicleID:   1,
		VehicleName: "2021 Toyota Camry",
		SalePrice:   25000,
	})
	require.NoError(t, err)

	err = service.RecordPurchase(customer.ID, &model.Purchase{
		VehicleID:   2,
		VehicleName: "2019 Honda Civic",
		SalePrice:   18000,
	})
	require.NoError(t, err)

	var updated model.Customer
	require.NoError(t, testDB.Preload("Purchases").First(&updated, customer.ID).Error)

	assert.Equal(t, 2, updated.TotalPurchases)
	assert.Equal(t, float64(43000), updated.TotalSpent)
	assert.Len(t, updated.Purchases, 2)
	assert.Equal(t, updated.TotalPurchases, len(updated.Purchases))

	var sum float64
	for _, p := range updated.Purchases {
		sum += p.SalePrice
	}
	assert.Equal(t, updated.TotalSpent, sum)

	assert.Equal(t, model.CustomerStatusActive, updated.Status)
	assert.Contains(t, []string(updated.Sources), model.SourcePurchase)
	assert.NotNil(t, updated.LastContactDate)
}

func TestCustomerService_RecordPurchase_CustomerNotFound(t *testing.T) {
	service, testDB := setupCustomerServiceTest(t)

	err := service.RecordPurchase(9999, &model.Purchase{
		VehicleName: "2021 Toyota Camry",
		SalePrice:   25000,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	// Nothing committed.
	var count int64
	testDB.Model(&model.Purchase{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCustomerService_LinkActivity_TagsSource(t *testing.T) {
	service, testDB := setupCustomerServiceTest(t)

	customer, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", nil)
	require.NoError(t, err)
	require.Nil(t, customer.LastContactDate)

	err = service.LinkActivity(customer.ID, model.ActivityTestDrive, 42)
	require.NoError(t, err)

	var updated model.Customer
	require.NoError(t, testDB.First(&updated, customer.ID).Error)
	assert.Contains(t, []string(updated.Sources), model.SourceTestDrive)
	assert.NotNil(t, updated.LastContactDate)

	// Tagging the same source again does not duplicate it.
	err = service.LinkActivity(customer.ID, model.ActivityTestDrive, 43)
	require.NoError(t, err)
	require.NoError(t, testDB.First(&updated, customer.ID).Error)

	seen := 0
	for _, s := range updated.Sources {
		if s == model.SourceTestDrive {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestCustomerService_FindByEmail(t *testing.T) {
	service, _ := setupCustomerServiceTest(t)

	created, err := service.GetOrCreate("Jane", "Doe", "jane@example.com", "555-0101", nil)
	require.NoError(t, err)

	found, err := service.FindByEmail("JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
