package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/autolot/dealership-backend/config"
	"github.com/autolot/dealership-backend/internal/app/model"
	"github.com/autolot/dealership-backend/internal/app/repository"
	"github.com/autolot/dealership-backend/internal/db"
	"github.com/autolot/dealership-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports an inventory spreadsheet. Expected columns, in order:
// VIN, Year, Make, Model, Trim, Condition, Price, Mileage, Body Type,
// Transmission, Drivetrain, Fuel Type, Exterior Color, Description.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	vehicleRepo := repository.NewVehicleRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	vehicles, err := readVehiclesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total vehicles to import: %d\n", len(vehicles))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := vehicleRepo.BulkCreate(vehicles, batchSize); err != nil {
		log.Fatal("Failed to bulk create vehicles:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total vehicles imported: %d\n", len(vehicles))
}

func readVehiclesFromXLSX(filePath string) ([]model.Vehicle, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var vehicles []model.Vehicle
	seenVINs := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		if len(row) < 8 {
			skippedCount++
			continue
		}

		vin := strings.ToUpper(strings.TrimSpace(cell(row, 0)))
		year := parseIntCell(cell(row, 1))
		vmake := strings.TrimSpace(cell(row, 2))
		vmodel := strings.TrimSpace(cell(row, 3))
		trim := strings.TrimSpace(cell(row, 4))
		condition := strings.ToLower(strings.TrimSpace(cell(row, 5)))
		price := parseFloatCell(cell(row, 6))
		mileage := parseIntCell(cell(row, 7))

		if !util.IsValidVIN(vin) || vmake == "" || vmodel == "" || year < 1900 {
			skippedCount++
			continue
		}
		if seenVINs[vin] {
			skippedCount++
			continue
		}
		seenVINs[vin] = true

		cond := model.VehicleCondition(condition)
		switch cond {
		case model.ConditionNew, model.ConditionUsed, model.ConditionCertified:
		default:
			cond = model.ConditionUsed
		}

		vehicles = append(vehicles, model.Vehicle{
			VIN:           vin,
			Year:          year,
			Make:          vmake,
			Model:         vmodel,
			Trim:          trim,
			Condition:     cond,
			Price:         price,
			Mileage:       mileage,
			MileageUnit:   "mi",
			BodyType:      strings.TrimSpace(cell(row, 8)),
			Transmission:  strings.TrimSpace(cell(row, 9)),
			Drivetrain:    strings.TrimSpace(cell(row, 10)),
			FuelType:      strings.TrimSpace(cell(row, 11)),
			ExteriorColor: strings.TrimSpace(cell(row, 12)),
			Description:   strings.TrimSpace(cell(row, 13)),
			InStock:       true,
		})
	}

	fmt.Printf("Parsed %d vehicles, skipped %d rows\n", len(vehicles), skippedCount)
	return vehicles, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseIntCell(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func parseFloatCell(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
