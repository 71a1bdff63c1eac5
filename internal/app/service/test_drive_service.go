package service

import (
	"errors"
	"fmt"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound  = errors.New("activity record not found")
	ErrInvalidStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type TestDriveRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	VehicleID     *uint
	PreferredDate string
	PreferredTime string
	Notes         string
}

type TestDriveService interface {
	CreateTestDrive(req TestDriveRequest) (*model.TestDrive, error)
	GetAllTestDrives() ([]model.TestDrive, error)
	GetTestDriveByID(id uint) (*model.TestDrive, error)
	GetTestDrivesByCustomer(customerID uint) ([]model.TestDrive, error)
	UpdateStatus(id uint, status model.TestDriveStatus) (*model.TestDrive, error)
	DeleteTestDrive(id uint) error
}

type testDriveService struct {
	testDriveRepo repository.TestDriveRepository
	vehicleRepo   repository.VehicleRepository
	customerSvc   CustomerService
	notifier      Notifier
}

func NewTestDriveService(testDriveRepo repository.TestDriveRepository, vehicleRepo repository.VehicleRepository, customerSvc CustomerService, notifier Notifier) TestDriveService {
	return &testDriveService{
		testDriveRepo: testDriveRepo,
		vehicleRepo:   vehicleRepo,
		customerSvc:   customerSvc,
		notifier:      notifier,
	}
}

// CreateTestDrive resolves the customer by email, inserts the request in
// pending status and tags the customer with the test-drive source.
func (s *testDriveService) CreateTestDrive(req TestDriveRequest) (*model.TestDrive, error) {
	customer, err := s.customerSvc.GetOrCreate(req.FirstName, req.LastName, req.Email, req.Phone, &CustomerExtra{
		Source: model.SourceTestDrive,
	})
	if err != nil {
		return nil, err
	}

	testDrive := &model.TestDrive{
		CustomerID:    customer.ID,
		VehicleID:     req.VehicleID,
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		CustomerPhone: req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Status:        model.TestDrivePending,
		Notes:         req.Notes,
	}

	if req.VehicleID != nil {
		vehicle, err := s.vehicleRepo.FindByID(*req.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, err
		}
		testDrive.VehicleName = vehicle.DisplayName()
	}

	if err := s.testDriveRepo.Create(testDrive); err != nil {
		logger.Error("Failed to create test drive", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return nil, err
	}

	if err := s.customerSvc.LinkActivity(customer.ID, model.ActivityTestDrive, testDrive.ID); err != nil {
		logger.Warn("Failed to link test drive to customer", map[string]interface{}{
			"customer_id":   customer.ID,
			"test_drive_id": testDrive.ID,
			"error":         err.Error(),
		})
	}

	logger.Info("Test drive requested", map[string]interface{}{
		"test_drive_id": testDrive.ID,
		"customer_id":   customer.ID,
		"vehicle":       testDrive.VehicleName,
	})

	if s.notifier != nil {
		go func() {
			msg := fmt.Sprintf("Test drive request from %s for %s on %s %s",
				testDrive.CustomerName, testDrive.VehicleName, testDrive.PreferredDate, testDrive.PreferredTime)
			if err := s.notifier.NotifyStaff(msg); err != nil {
				logger.Warn("Failed to send test drive notification", map[string]interface{}{
					"test_drive_id": testDrive.ID,
					"error":         err.Error(),
				})
			}
		}()
	}

	return testDrive, nil
}

func (s *testDriveService) GetAllTestDrives() ([]model.TestDrive, error) {
	return s.testDriveRepo.FindAll()
}

func (s *testDriveService) GetTestDriveByID(id uint) (*model.TestDrive, error) {
	testDrive, err := s.testDriveRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return testDrive, nil
}

func (s *testDriveService) GetTestDrivesByCustomer(customerID uint) ([]model.TestDrive, error) {
	return s.testDriveRepo.FindByCustomerID(customerID)
}

// UpdateStatus moves a test drive along its lifecycle. Unknown statuses and
// moves not present in the transition table are rejected without writing.
func (s *testDriveService) UpdateStatus(id uint, status model.TestDriveStatus) (*model.TestDrive, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	testDrive, err := s.testDriveRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if !testDrive.Status.CanTransition(status) {
		logger.Warn("Rejected test drive status transition", map[string]interface{}{
			"test_drive_id": id,
			"from":          testDrive.Status,
			"to":            status,
		})
		return nil, ErrInvalidTransition
	}

	if err := s.testDriveRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	testDrive.Status = status

	logger.Info("Test drive status updated", map[string]interface{}{
		"test_drive_id": id,
		"status":        status,
	})
	return testDrive, nil
}

func (s *testDriveService) DeleteTestDrive(id uint) error {
	if err := s.testDriveRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}
