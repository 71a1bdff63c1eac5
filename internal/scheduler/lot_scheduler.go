package scheduler

import (
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// LotScheduler advances the days-on-lot counter for every unsold vehicle
// once a night.
type LotScheduler struct {
	cron        *cron.Cron
	vehicleRepo repository.VehicleRepository
}

func NewLotScheduler(vehicleRepo repository.VehicleRepository) *LotScheduler {
	return &LotScheduler{
		cron:        cron.New(),
		vehicleRepo: vehicleRepo,
	}
}

// Start registers the nightly job. Runs at 00:05 server time so a vehicle
// added late in the evening still counts its first day.
func (s *LotScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		logger.Info("Starting scheduled days-on-lot update", nil)

		updated, err := s.vehicleRepo.IncrementDaysOnLot()
		if err != nil {
			logger.Error("Failed to update days on lot", err)
			return
		}

		logger.Info("Days on lot updated", map[string]interface{}{
			"vehicles": updated,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for days-on-lot update", err)
		return err
	}

	s.cron.Start()
	logger.Info("Lot scheduler started (daily at 00:05)", nil)

	return nil
}

// Stop halts the scheduler.
func (s *LotScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Lot scheduler stopped", nil)
}
