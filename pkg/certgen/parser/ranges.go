package parser

import (
	"fmt"
	"strings"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"github.com/xuri/excelize/v2"
)

// ResolveRange turns a --range value into a sheet name and area.
// The value is either a reference ('Sheet1'!$A$1:$I$40, A1:I40) or the name
// of a workbook defined name whose reference is used instead.
// The returned sheet is empty when the reference does not name one.
func ResolveRange(f *excelize.File, ref string) (string, *models.Area, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil, nil
	}
	if !strings.Contains(ref, ":") {
		target, ok := lookupDefinedName(f, ref)
		if !ok {
			return "", nil, fmt.Errorf("%w: defined name %q not found", models.ErrResourceUnavailable, ref)
		}
		ref = target
	}
	sheet, area := parseRangeReference(ref)
	if area == nil {
		return "", nil, fmt.Errorf("invalid range reference %q", ref)
	}
	return sheet, area, nil
}

// lookupDefinedName returns the reference a workbook defined name points to.
func lookupDefinedName(f *excelize.File, name string) (string, bool) {
	for _, dn := range f.GetDefinedName() {
		if strings.EqualFold(dn.Name, name) {
			return dn.RefersTo, true
		}
	}
	return "", false
}

// parseRangeReference parses a range reference string.
// Format: 'SheetName'!$A$1:$D$10, SheetName!$A$1:$D$10 or A1:D10
func parseRangeReference(ref string) (string, *models.Area) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	// Only the first range of a multi-range reference is used
	if idx := strings.Index(ref, ","); idx >= 0 {
		ref = ref[:idx]
	}

	var sheetName string
	rangeStr := ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheetName = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	return sheetName, parseRangeToArea(rangeStr)
}

// parseRangeToArea parses a range string like $A$1:$D$10 to Area.
func parseRangeToArea(rangeStr string) *models.Area {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
