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

func setupTestDriveServiceTest(t *testing.T) (TestDriveService, *gorm.DB, *model.Vehicle) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	testDriveRepo := repository.NewTestDriveRepository(testDB)
	vehicleRepo := repository.NewVehicleRepository(testDB)
	customerService := NewCustomerService(repository.NewCustomerRepository(testDB), testDB)
	testDriveService := NewTestDriveService(testDriveRepo, vehicleRepo, customerService, nil)

	vehicle := &model.Vehicle{
		VIN:       "4T1BF1FK5HU123456",
		Year:      2021,
		Make:      "Toyota",
		Model:     "Camry",
		Price:     25000,
		Condition: model.ConditionUsed,
		InStock:   true,
	}
	testDB.Create(vehicle)

	return testDriveService, testDB, vehicle
}

func TestTestDriveService_CreateTestDrive_Success(t *testing.T) {
	service, testDB, vehicle := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@example.com",
		Phone:         "555-0101",
		VehicleID:     &vehicle.ID,
		PreferredDate: "2026-09-02",
		PreferredTime: "14:00",
	})
	require.NoError(t, err)

	assert.NotZero(t, testDrive.ID)
	assert.Equal(t, model.TestDrivePending, testDrive.Status)
	assert.Equal(t, "Jane Doe", testDrive.CustomerName)
	assert.Equal(t, "2021 Toyota Camry", testDrive.VehicleName)

	// The submission created a customer tagged with the test-drive source.
	var customer model.Customer
	require.NoError(t, testDB.First(&customer, testDrive.CustomerID).Error)
	assert.Equal(t, "jane@example.com", customer.Email)
	assert.Contains(t, []string(customer.Sources), model.SourceTestDrive)
	assert.NotNil(t, customer.LastContactDate)
}

func TestTestDriveService_CreateTestDrive_NoVehicle(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, testDrive.VehicleID)
	assert.Empty(t, testDrive.VehicleName)
}

func TestTestDriveService_CreateTestDrive_UnknownVehicle(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	missing := uint(9999)
	_, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
		VehicleID: &missing,
	})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestTestDriveService_UpdateStatus_AllowedPath(t *testing.T) {
	service, _, vehicle := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
		VehicleID: &vehicle.ID,
	})
	require.NoError(t, err)

	updated, err := service.UpdateStatus(testDrive.ID, model.TestDriveScheduled)
	require.NoError(t, err)
	assert.Equal(t, model.TestDriveScheduled, updated.Status)

	updated, err = service.UpdateStatus(testDrive.ID, model.TestDriveCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.TestDriveCompleted, updated.Status)
}

func TestTestDriveService_UpdateStatus_RejectsSkippedStep(t *testing.T) {
	service, testDB, _ := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	// pending cannot jump straight to completed.
	_, err = service.UpdateStatus(testDrive.ID, model.TestDriveCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The rejected write left the row untouched.
	var stored model.TestDrive
	require.NoError(t, testDB.First(&stored, testDrive.ID).Error)
	assert.Equal(t, model.TestDrivePending, stored.Status)
}

func TestTestDriveService_UpdateStatus_TerminalStates(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	_, err = service.UpdateStatus(testDrive.ID, model.TestDriveCancelled)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = service.UpdateStatus(testDrive.ID, model.TestDriveScheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTestDriveService_UpdateStatus_UnknownStatus(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	testDrive, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	_, err = service.UpdateStatus(testDrive.ID, model.TestDriveStatus("parked"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTestDriveService_UpdateStatus_NotFound(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	_, err := service.UpdateStatus(9999, model.TestDriveScheduled)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestTestDriveService_GetTestDrivesByCustomer(t *testing.T) {
	service, _, _ := setupTestDriveServiceTest(t)

	first, err := service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	_, err = service.CreateTestDrive(TestDriveRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	_, err = service.CreateTestDrive(TestDriveRequest{
		FirstName: "Bob",
		Email:     "bob@example.com",
	})
	require.NoError(t, err)

	drives, err := service.GetTestDrivesByCustomer(first.CustomerID)
	require.NoError(t, err)
	assert.Len(t, drives, 2)
}
