package output

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/models"
	"github.com/xuri/excelize/v2"
)

// InventorySheet is the sheet name used by WriteInventoryXLSX.
const InventorySheet = "Cells"

var inventoryHeaders = []interface{}{"Index", "Type", "Lines", "First Line", "Execution Count", "Outputs"}

// WriteInventoryXLSX writes a cell inventory as a single-sheet workbook.
func WriteInventoryXLSX(fs afero.Fs, path string, summaries []models.CellSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeaders); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(InventorySheet, "A1", "F1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(InventorySheet, "D", "D", 60); err != nil {
		return err
	}

	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2) // row 1 is the header
		if err != nil {
			return err
		}
		execCount := ""
		if s.ExecutionCount != nil {
			execCount = strconv.Itoa(*s.ExecutionCount)
		}
		row := []interface{}{s.Index, s.CellType, s.Lines, s.FirstLine, execCount, s.Outputs}
		if err := f.SetSheetRow(InventorySheet, cell, &row); err != nil {
			return err
		}
	}

	out, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}
