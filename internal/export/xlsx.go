package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/CarlosRamz1/pdf-converter/internal/classify"
)

// SheetName is the worksheet that holds classified lines.
const SheetName = "PDF Content"

var (
	xlsxHeader = []any{"Type", "Content", "Level"}
	xlsxWidths = map[string]float64{"A": 12, "B": 80, "C": 8}
)

// WriteXlsx writes classified lines to path as a single-sheet workbook
// with a bold Type/Content/Level header.
func WriteXlsx(path string, lines []classify.Line) error {
	f, err := buildWorkbook(lines)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeAtomic("write xlsx", path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func buildWorkbook(lines []classify.Line) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for col, width := range xlsxWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{string(line.Role), line.Text, line.Level}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// ReadXlsx returns the data rows (header excluded) of the workbook at path.
func ReadXlsx(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}
