package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/autolot/dealership-backend/internal/app/service"
	apperrors "github.com/autolot/dealership-backend/internal/errors"
	"github.com/autolot/dealership-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GetDashboard returns the admin dashboard summary (staff only)
// GET /api/v1/admin/dashboard
func (ctrl *ReportController) GetDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.reportService.GetDashboardStats()
	if err != nil {
		log.Error("Failed to build dashboard stats", err, nil)
		apperrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// ExportInventory streams the inventory as an XLSX file (staff only)
// GET /api/v1/admin/reports/inventory
func (ctrl *ReportController) ExportInventory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.reportService.ExportInventoryXLSX()
	if err != nil {
		log.Error("Failed to export inventory", err, nil)
		apperrors.InternalError(c, "Failed to export inventory")
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSales streams the sales history as an XLSX file (staff only)
// GET /api/v1/admin/reports/sales
func (ctrl *ReportController) ExportSales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.reportService.ExportSalesXLSX()
	if err != nil {
		log.Error("Failed to export sales", err, nil)
		apperrors.InternalError(c, "Failed to export sales")
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
