package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// DashboardStats is the admin dashboard summary. Counts reflect the state
// at query time; there is no caching layer in front of it.
type DashboardStats struct {
	Inventory           InventoryAggregates `json:"inventory"`
	TotalCustomers      int64               `json:"total_customers"`
	PendingTestDrives   int64               `json:"pending_test_drives"`
	OpenTradeIns        int64               `json:"open_trade_ins"`
	PendingApplications int64               `json:"pending_applications"`
	OpenReconciliations int64               `json:"open_reconciliations"`
	SalesLast30Days     int64               `json:"sales_last_30_days"`
	RevenueLast30Days   float64             `json:"revenue_last_30_days"`
}

type ReportService interface {
	GetDashboardStats() (*DashboardStats, error)
	ExportInventoryXLSX() (*bytes.Buffer, error)
	ExportSalesXLSX() (*bytes.Buffer, error)
}

type reportService struct {
	vehicleRepo repository.VehicleRepository
	db          *gorm.DB
}

func NewReportService(vehicleRepo repository.VehicleRepository, db *gorm.DB) ReportService {
	return &reportService{
		vehicleRepo: vehicleRepo,
		db:          db,
	}
}

func (s *reportService) GetDashboardStats() (*DashboardStats, error) {
	vehicles, err := s.vehicleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Inventory: ComputeAggregates(vehicles),
	}

	counts := []struct {
		dest  *int64
		model interface{}
		query string
		args  []interface{}
	}{
		{&stats.TotalCustomers, &model.Customer{}, "", nil},
		{&stats.PendingTestDrives, &model.TestDrive{}, "status = ?", []interface{}{model.TestDrivePending}},
		{&stats.OpenTradeIns, &model.TradeIn{}, "status NOT IN ?", []interface{}{[]model.TradeInStatus{model.TradeInCompleted, model.TradeInDeclined}}},
		{&stats.PendingApplications, &model.FinancingApplication{}, "status IN ?", []interface{}{[]model.FinancingStatus{model.FinancingSubmitted, model.FinancingReviewing, model.FinancingDocumentsRequested}}},
		{&stats.OpenReconciliations, &model.ReconciliationTask{}, "status = ?", []interface{}{model.ReconciliationOpen}},
	}
	for _, c := range counts {
		q := s.db.Model(c.model)
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			logger.Error("Failed to count records for dashboard", err, nil)
			return nil, err
		}
	}

	since := time.Now().AddDate(0, 0, -30)
	row := s.db.Model(&model.Purchase{}).
		Select("COUNT(*) as count, COALESCE(SUM(sale_price), 0) as revenue").
		Where("purchase_date >= ?", since)
	var result struct {
		Count   int64
		Revenue float64
	}
	if err := row.Scan(&result).Error; err != nil {
		logger.Error("Failed to summarize recent sales", err, nil)
		return nil, err
	}
	stats.SalesLast30Days = result.Count
	stats.RevenueLast30Days = result.Revenue

	return stats, nil
}

var inventoryHeaders = []string{
	"VIN", "Year", "Make", "Model", "Trim", "Condition", "Price",
	"Mileage", "In Stock", "Sold", "Days On Lot", "Views",
}

func (s *reportService) ExportInventoryXLSX() (*bytes.Buffer, error) {
	vehicles, err := s.vehicleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range inventoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, v := range vehicles {
		rowNum := i + 2
		values := []interface{}{
			v.VIN, v.Year, v.Make, v.Model, v.Trim, string(v.Condition), v.Price,
			v.Mileage, v.InStock, v.Sold, v.DaysOnLot, v.ViewCount,
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write inventory export", err, nil)
		return nil, err
	}

	logger.Info("Inventory export generated", map[string]interface{}{
		"vehicles": len(vehicles),
	})
	return buf, nil
}

var salesHeaders = []string{
	"Date", "Customer", "Vehicle", "VIN", "Sale Price",
	"Down Payment", "Financed", "Trade-In Value",
}

func (s *reportService) ExportSalesXLSX() (*bytes.Buffer, error) {
	var purchases []model.Purchase
	if err := s.db.Order("purchase_date DESC").Find(&purchases).Error; err != nil {
		logger.Error("Failed to load purchases for export", err, nil)
		return nil, err
	}

	var customers []model.Customer
	if err := s.db.Find(&customers).Error; err != nil {
		logger.Error("Failed to load customers for export", err, nil)
		return nil, err
	}
	names := make(map[uint]string, len(customers))
	for i := range customers {
		names[customers[i].ID] = customers[i].FullName()
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range salesHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, p := range purchases {
		rowNum := i + 2
		customerName, ok := names[p.CustomerID]
		if !ok {
			customerName = fmt.Sprintf("customer %d", p.CustomerID)
		}
		values := []interface{}{
			p.PurchaseDate.Format("2006-01-02"), customerName, p.VehicleName, p.VIN,
			p.SalePrice, p.DownPayment, p.FinancedAmount, p.TradeInValue,
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to write sales export", err, nil)
		return nil, err
	}

	logger.Info("Sales export generated", map[string]interface{}{
		"purchases": len(purchases),
	})
	return buf, nil
}
