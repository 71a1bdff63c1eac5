package repository

import (
	"testing"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCustomerRepositoryTest(t *testing.T) (CustomerRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewCustomerRepository(testDB), testDB
}

func TestCustomerRepository_CreateAndFindByEmail(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)

	customer := &model.Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Sources:   model.StringArray{model.SourceWalkIn},
		Status:    model.CustomerStatusLead,
	}
	require.NoError(t, repo.Create(customer))
	assert.NotZero(t, customer.ID)

	found, err := repo.FindByEmail("jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)
	assert.Equal(t, model.StringArray{model.SourceWalkIn}, found.Sources)

	// Lookup is exact; normalization happens above the repository.
	_, err = repo.FindByEmail("JANE@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepository_UniqueEmail(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)

	require.NoError(t, repo.Create(&model.Customer{
		FirstName: "Jane",
		Email:     "jane@example.com",
	}))

	err := repo.Create(&model.Customer{
		FirstName: "Janet",
		Email:     "jane@example.com",
	})
	assert.Error(t, err)
}

func TestCustomerRepository_FindByID_PreloadsHistory(t *testing.T) {
	repo, testDB := setupCustomerRepositoryTest(t)

	customer := &model.Customer{
		FirstName: "Jane",
		Email:     "jane@example.com",
	}
	require.NoError(t, repo.Create(customer))

	require.NoError(t, testDB.Create(&model.Purchase{
		CustomerID:  customer.ID,
		VehicleName: "2021 Toyota Camry",
		SalePrice:   25000,
	}).Error)
	require.NoError(t, testDB.Create(&model.TestDrive{
		CustomerID:    customer.ID,
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Status:        model.TestDrivePending,
	}).Error)

	found, err := repo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Len(t, found.Purchases, 1)
	assert.Len(t, found.TestDrives, 1)
}

func TestCustomerRepository_Update(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)

	customer := &model.Customer{
		FirstName: "Jane",
		Email:     "jane@example.com",
		Status:    model.CustomerStatusLead,
	}
	require.NoError(t, repo.Create(customer))

	customer.Status = model.CustomerStatusVIP
	customer.Tags = model.StringArray{"repeat-buyer"}
	require.NoError(t, repo.Update(customer))

	found, err := repo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerStatusVIP, found.Status)
	assert.Equal(t, model.StringArray{"repeat-buyer"}, found.Tags)
}

func TestCustomerRepository_FindAll(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)

	require.NoError(t, repo.Create(&model.Customer{FirstName: "Jane", Email: "jane@example.com"}))
	require.NoError(t, repo.Create(&model.Customer{FirstName: "Bob", Email: "bob@example.com"}))

	customers, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}
