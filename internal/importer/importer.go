// Package importer reads drawing geometry from DXF files and ordered sheet
// lists from CSV and Excel files. Sheet list import supports automatic
// delimiter detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SheetLink/internal/model"
)

// ImportResult holds the results of a sheet list import.
type ImportResult struct {
	Sheets   []model.SheetRef
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name       int
	File       int
	ModelSpace int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":  {"name", "sheet", "sheet name", "layout", "layout name", "title"},
	"file":  {"file", "path", "dxf", "drawing", "filename"},
	"model": {"model", "model space", "modelspace", "is model"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping (name, file, model) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, File: -1, ModelSpace: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "file":
					if mapping.File == -1 {
						mapping.File = i
					}
				case "model":
					if mapping.ModelSpace == -1 {
						mapping.ModelSpace = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, File: 1, ModelSpace: 2}, false
	}
	return mapping, true
}

// parseBool accepts the usual spreadsheet spellings of a flag.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1", "x", "model":
		return true, true
	case "", "no", "n", "false", "f", "0", "-", "paper", "layout":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a SheetRef from a row using the given column mapping.
// Returns the sheet, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, sheetCount int) (model.SheetRef, string, string) {
	file := getCell(row, mapping.File)
	if file == "" {
		return model.SheetRef{}, fmt.Sprintf("%s: Missing drawing file", rowLabel), ""
	}

	var warning string
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Sheet %d", sheetCount+1)
		warning = fmt.Sprintf("%s: Missing sheet name, using '%s'", rowLabel, name)
	}

	sheet := model.SheetRef{Name: name, File: file}

	modelStr := getCell(row, mapping.ModelSpace)
	if modelStr != "" {
		flag, ok := parseBool(modelStr)
		if ok {
			sheet.ModelSpace = flag
		} else {
			warning = fmt.Sprintf("%s: Unknown model space flag '%s', treating as a layout", rowLabel, modelStr)
		}
	}

	return sheet, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a sheet list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports a sheet list from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a sheet list from the first worksheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Row order is preserved: it defines the sheet order.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.File == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: File")
			return result
		}
	}

	seen := map[string]bool{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		sheet, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Sheets))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if seen[sheet.Name] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate sheet name '%s'", rowLabel, sheet.Name))
			continue
		}
		seen[sheet.Name] = true

		result.Sheets = append(result.Sheets, sheet)
	}

	return result
}
