package common

import (
	"fmt"
	"path/filepath"

	"sunlight/senate-csv/internal/fileutils"
	"sunlight/senate-csv/internal/logging"
	"sunlight/senate-csv/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding cleaned rows.
const SheetName = "disbursements"

// WriteCleanRowsToXLSX writes cleaned rows to a spreadsheet. The banner,
// when set, occupies the first row.
func WriteCleanRowsToXLSX(rows []models.CleanRow, filePath, banner string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	rowNum := 1
	if banner != "" {
		if err := f.SetCellValue(SheetName, "A1", banner); err != nil {
			return fmt.Errorf("error writing banner: %w", err)
		}
		rowNum++
	}

	if err := setRow(f, rowNum, toCells(models.CleanColumns)); err != nil {
		return err
	}
	for _, row := range rows {
		rowNum++
		if err := setRow(f, rowNum, toCells(row.Values())); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		logger.WithError(err).Error("Failed to save workbook")
		return fmt.Errorf("error saving workbook: %w", err)
	}
	logger.Info("Successfully wrote XLSX file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("error writing row %d: %w", rowNum, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
