package extractor

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetGrid is one spreadsheet tab as a grid of cell strings.
type SheetGrid struct {
	Name string
	Rows [][]string
}

// ExtractSheets opens a spreadsheet from memory and returns every sheet's
// cell grid in workbook order. Formatted values are returned as displayed,
// so currency cells keep their "R$ 1.234,56" text.
func ExtractSheets(data []byte) ([]SheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer f.Close()

	var sheets []SheetGrid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		sheets = append(sheets, SheetGrid{Name: name, Rows: rows})
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet contains no readable sheets")
	}
	return sheets, nil
}
