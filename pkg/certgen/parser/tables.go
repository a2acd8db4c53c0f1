// Package parser reads certificate records from Excel workbooks.
package parser

import (
	"fmt"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"github.com/xuri/excelize/v2"
)

// TableBounds is the 0-based bounding box of non-empty cells.
type TableBounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// String returns the bounds in Excel range notation (e.g., "A1:I10").
func (b TableBounds) String() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DetectTable finds the region of rows holding data. When area is non-nil
// only cells inside it are considered. The first row of the region is the
// header row. It returns false when no cell holds data.
func DetectTable(rows [][]string, area *models.Area) (TableBounds, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows, area)
	if minRow < 0 {
		return TableBounds{}, false
	}
	return TableBounds{MinRow: minRow, MaxRow: maxRow, MinCol: minCol, MaxCol: maxCol}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string, area *models.Area) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			if area != nil && !area.Contains(rowIdx+1, colIdx+1) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells of one row within the column bounds.
func countNonEmptyCells(row []string, minCol, maxCol int) int {
	count := 0
	for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
		if !isBlank(row[colIdx]) {
			count++
		}
	}
	return count
}
