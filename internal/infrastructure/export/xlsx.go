// Package export renders acquisitions as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"procurement/internal/domain/acquisition"
)

// SheetName is the worksheet holding the exported rows.
const SheetName = "Acquisitions"

// ContentTypeXLSX is the MIME type of the produced workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Budget", "Unit", "Type", "Quantity", "Unit Value",
	"Total Value", "Acquisition Date", "Provider", "Documentation", "State",
}

// WriteXLSX writes records as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, records []acquisition.Acquisition) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, a := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			a.ID,
			a.Budget.InexactFloat64(),
			a.Unit,
			a.Type,
			a.Quantity.InexactFloat64(),
			a.UnitValue.InexactFloat64(),
			a.TotalValue.InexactFloat64(),
			a.AcquisitionDate,
			a.Provider,
			a.Documentation,
			a.StateLabel(),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
