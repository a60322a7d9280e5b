// Package export builds the customer spreadsheet download.
package export

import (
	"fmt"
	"time"

	"github.com/veritrace/batchtrack/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Customers"

// Filename returns the download name for the given day, customers_DD-MM-YYYY.xlsx.
func Filename(now time.Time) string {
	return fmt.Sprintf("customers_%s.xlsx", now.Format("02-01-2006"))
}

// CustomerWorkbook materializes the customer table into a styled
// workbook: colored header, zebra striping, thin borders, autofilter
// and a trailing summary row.
func CustomerWorkbook(customers []models.CustomerScan) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "Phone", "Location", "Batch Number"}
	widths := []float64{10, 50, 40, 100, 50}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheetName, 1, 25); err != nil {
		return nil, err
	}

	borderStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, err
	}
	zebraStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, err
	}

	for i, c := range customers {
		row := i + 2
		values := []interface{}{c.ID, orNA(c.Name), orNA(c.Phone), orNA(c.Location), orNA(c.Batch)}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}

		style := borderStyle
		if i%2 == 0 {
			style = zebraStyle
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellStyle(sheetName, start, end, style); err != nil {
			return nil, err
		}
	}

	if err := f.AutoFilter(sheetName, "A1:E1", nil); err != nil {
		return nil, err
	}

	summaryRow := len(customers) + 2
	summaryCell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, summaryCell, fmt.Sprintf("Total Customers: %d", len(customers))); err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, summaryCell, summaryCell, boldStyle); err != nil {
		return nil, err
	}

	return f, nil
}

func thinBorders() []excelize.Border {
	sides := []string{"top", "left", "bottom", "right"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Style: 1, Color: "000000"})
	}
	return borders
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
