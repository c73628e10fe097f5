package render

import (
	"errors"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Payroll"
	titleRow  = 1
	headerRow = 3
)

// XLSX writes the document to a single worksheet with a merged title band
// above a styled header row. Numeric columns are stored as numbers.
type XLSX struct{}

func NewXLSX() XLSX { return XLSX{} }

func (XLSX) Format() string { return "xlsx" }
func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (x XLSX) Render(doc Document) ([]byte, error) {
	out, err := x.render(doc)
	if err != nil {
		return nil, &RenderError{Format: x.Format(), Err: err}
	}
	return out, nil
}

func (XLSX) render(doc Document) ([]byte, error) {
	if len(doc.Columns) == 0 {
		return nil, errors.New("document has no columns")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(doc.Columns))
	if err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	titleCell, _ := excelize.CoordinatesToCellName(1, titleRow)
	titleEnd := lastCol + strconv.Itoa(titleRow)
	if err := f.SetCellValue(sheetName, titleCell, doc.Title); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheetName, titleCell, titleEnd); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, titleCell, titleEnd, titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheetName, titleRow, 24); err != nil {
		return nil, err
	}

	for i, col := range doc.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, err
		}
	}
	headerStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetCellStyle(sheetName, headerStart, lastCol+strconv.Itoa(headerRow), headerStyle); err != nil {
		return nil, err
	}

	for r, row := range doc.Rows {
		for c := range doc.Columns {
			if c >= len(row) {
				break
			}
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, err
			}
			var value interface{} = row[c]
			if doc.numeric(c) {
				if v, err := strconv.ParseFloat(row[c], 64); err == nil {
					value = v
					if err := f.SetCellStyle(sheetName, cell, cell, amountStyle); err != nil {
						return nil, err
					}
				}
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return nil, err
	}
	if len(doc.Columns) > 1 {
		if err := f.SetColWidth(sheetName, "B", lastCol, 16); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
