package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// DefaultSheet is the sheet read when none is configured.
const DefaultSheet = "Sheet1"

// RowError reports a blank or unusable required field in a table row.
type RowError struct {
	Sheet string
	Row   int
	Field string
	// Reason describes what is wrong with the field. Empty means blank.
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is blank"
	}
	return fmt.Sprintf("sheet %q row %d: field %q %s: %v", e.Sheet, e.Row, e.Field, reason, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Table holds the records read from one sheet.
type Table struct {
	// BookName is the workbook file name (no path).
	BookName string
	// Sheet is the sheet the records were read from.
	Sheet string
	// Bounds is the detected table region, header row included.
	Bounds  TableBounds
	Records []models.Record
}

// TableOptions configures how a workbook is read.
type TableOptions struct {
	// Sheet names the sheet to read. Empty means DefaultSheet, or the first
	// sheet of the workbook when it has no DefaultSheet.
	Sheet string
	// Range optionally restricts the table to a cell range or defined name.
	Range string
}

// OpenTable opens the workbook at path and reads all records from it.
func OpenTable(path string, opts TableOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", models.ErrResourceUnavailable, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	rangeSheet, area, err := ResolveRange(f, opts.Range)
	if err != nil {
		return nil, err
	}

	sheetName, err := resolveSheet(f, opts.Sheet, rangeSheet)
	if err != nil {
		return nil, err
	}

	records, bounds, err := ReadRecords(f, sheetName, area)
	if err != nil {
		return nil, err
	}

	return &Table{
		BookName: filepath.Base(path),
		Sheet:    sheetName,
		Bounds:   bounds,
		Records:  records,
	}, nil
}

// resolveSheet picks the sheet to read. A sheet named by the range wins.
func resolveSheet(f *excelize.File, configured, fromRange string) (string, error) {
	sheetList := f.GetSheetList()
	has := func(name string) bool {
		for _, s := range sheetList {
			if s == name {
				return true
			}
		}
		return false
	}

	want := configured
	if fromRange != "" {
		want = fromRange
	}
	if want != "" {
		if !has(want) {
			return "", fmt.Errorf("%w: sheet %q not found", models.ErrResourceUnavailable, want)
		}
		return want, nil
	}

	if has(DefaultSheet) {
		return DefaultSheet, nil
	}
	if len(sheetList) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", models.ErrResourceUnavailable)
	}
	return sheetList[0], nil
}

// ReadRecords reads certificate records from a sheet.
// The first non-empty row of the table is the header row; every following
// row that holds data becomes a record. Missing columns, blank fields and
// batch or email values that cannot name a single path segment fail the
// whole read.
func ReadRecords(f *excelize.File, sheetName string, area *models.Area) ([]models.Record, TableBounds, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, TableBounds{}, err
	}

	bounds, ok := DetectTable(rows, area)
	if !ok {
		return nil, TableBounds{}, fmt.Errorf("%w: sheet %q has no data", models.ErrMalformedRecord, sheetName)
	}

	columns, err := mapColumns(rows[bounds.MinRow], bounds)
	if err != nil {
		return nil, bounds, fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	var result []models.Record
	for rowIdx := bounds.MinRow + 1; rowIdx <= bounds.MaxRow; rowIdx++ {
		row := rows[rowIdx]
		if countNonEmptyCells(row, bounds.MinCol, bounds.MaxCol) == 0 {
			continue
		}

		rec := models.Record{Row: rowIdx + 1} // 1-based row index
		for _, column := range models.RequiredColumns {
			value := cleanValue(cellAt(row, columns[column]))
			if value == "" {
				return nil, bounds, &RowError{
					Sheet: sheetName,
					Row:   rowIdx + 1,
					Field: column,
					Err:   models.ErrMalformedRecord,
				}
			}
			rec.SetField(column, value)
		}
		for _, column := range models.PathColumns {
			if reason := pathSegmentProblem(rec.Field(column)); reason != "" {
				return nil, bounds, &RowError{
					Sheet:  sheetName,
					Row:    rowIdx + 1,
					Field:  column,
					Reason: reason,
					Err:    models.ErrMalformedRecord,
				}
			}
		}
		result = append(result, rec)
	}

	return result, bounds, nil
}

// mapColumns maps each required header to its 0-based column index.
func mapColumns(header []string, bounds TableBounds) (map[string]int, error) {
	columns := make(map[string]int)
	for colIdx := bounds.MinCol; colIdx <= bounds.MaxCol && colIdx < len(header); colIdx++ {
		name := strings.TrimSpace(header[colIdx])
		if name == "" {
			continue
		}
		if _, dup := columns[name]; !dup {
			columns[name] = colIdx
		}
	}

	var missing []string
	for _, column := range models.RequiredColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, fmt.Sprintf("%q", column))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", models.ErrMalformedRecord, strings.Join(missing, ", "))
	}
	return columns, nil
}

func cellAt(row []string, colIdx int) string {
	if colIdx < 0 || colIdx >= len(row) {
		return ""
	}
	return row[colIdx]
}

// pathSegmentProblem reports why s cannot be used as one file or folder
// name under the output root, or "" when it can. Both separators are
// rejected so a sheet behaves the same on every platform.
func pathSegmentProblem(s string) string {
	switch {
	case s == "." || s == "..":
		return fmt.Sprintf("value %q names a relative directory", s)
	case strings.ContainsAny(s, `/\`):
		return fmt.Sprintf("value %q contains a path separator", s)
	case strings.ContainsRune(s, 0):
		return fmt.Sprintf("value %q contains a NUL byte", s)
	}
	return ""
}

// cleanValue trims a cell and normalizes it to NFC so that composed and
// decomposed spellings of a name measure and render the same. Every field
// goes through it, so course, dates and GPA lose the surrounding
// whitespace that a verbatim cell copy would keep in the paragraph.
func cleanValue(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
