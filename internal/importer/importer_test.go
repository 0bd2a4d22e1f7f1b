package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,File\nA,a.dxf\nB,b.dxf\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;File;Model\nA;a.dxf;no\nB;b.dxf;no\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tFile\nA\ta.dxf\nB\tb.dxf\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|File\nA|a.dxf\nB|b.dxf\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "File", "Model"})
	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.File != 1 || mapping.ModelSpace != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"DXF", "Model Space", "SHEET NAME"})
	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.File != 0 || mapping.ModelSpace != 1 || mapping.Name != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"S-101", "s101.dxf"})
	if isHeader {
		t.Error("expected no header detection for data row")
	}
	if mapping.Name != 0 || mapping.File != 1 || mapping.ModelSpace != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,File,Model\nModel,model.dxf,yes\nS-101,s101.dxf,no\nS-102,s102.dxf,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(result.Sheets))
	}
	if !result.Sheets[0].ModelSpace {
		t.Error("expected first sheet to be model space")
	}
	if result.Sheets[1].Name != "S-101" || result.Sheets[1].File != "s101.dxf" || result.Sheets[1].ModelSpace {
		t.Errorf("unexpected second sheet %+v", result.Sheets[1])
	}
	if result.Sheets[2].Name != "S-102" {
		t.Errorf("order not preserved: %+v", result.Sheets)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,a.dxf\nB,b.dxf\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sheets) != 2 || result.Sheets[0].Name != "A" || result.Sheets[1].File != "b.dxf" {
		t.Errorf("unexpected sheets %+v", result.Sheets)
	}
}

func TestImportCSVFromReader_MissingFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,File\nA,\nB,b.dxf\n"), ',')
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if len(result.Sheets) != 1 {
		t.Errorf("expected the valid row to survive, got %d sheets", len(result.Sheets))
	}
}

func TestImportCSVFromReader_MissingFileColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Model\nA,no\n"), ',')
	if len(result.Errors) == 0 {
		t.Fatal("expected missing column error")
	}
	if !strings.Contains(result.Errors[0], "File") {
		t.Errorf("error should name the missing column, got %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyName(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,File\n,a.dxf\n"), ',')
	if len(result.Sheets) != 1 || result.Sheets[0].Name != "Sheet 1" {
		t.Fatalf("expected generated name, got %+v", result.Sheets)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected header and name warnings, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_DuplicateNames(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,a.dxf\nA,b.dxf\n"), ',')
	if len(result.Errors) != 1 || len(result.Sheets) != 1 {
		t.Errorf("expected duplicate rejected, got sheets=%v errors=%v", result.Sheets, result.Errors)
	}
}

func TestImportCSVFromReader_UnknownModelFlag(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,File,Model\nA,a.dxf,maybe\n"), ',')
	if len(result.Sheets) != 1 || result.Sheets[0].ModelSpace {
		t.Fatalf("expected layout sheet, got %+v", result.Sheets)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "maybe") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about flag, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,a.dxf\n,\nB,b.dxf\n"), ',')
	if len(result.Sheets) != 2 {
		t.Errorf("expected 2 sheets, got %d", len(result.Sheets))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets.csv")
	if err := os.WriteFile(path, []byte("Name;File\nA;a.dxf\nB;b.dxf\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sheets) != 2 {
		t.Errorf("expected 2 sheets, got %d", len(result.Sheets))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheets.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Sheet", "Path", "Model Space"},
		{"Model", "model.dxf", "yes"},
		{"A", "a.dxf", "no"},
		{"B", "b.dxf", "no"},
	})

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(result.Sheets))
	}
	if !result.Sheets[0].ModelSpace || result.Sheets[2].Name != "B" {
		t.Errorf("unexpected sheets %+v", result.Sheets)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
		ok    bool
	}{
		{"yes", true, true},
		{"TRUE", true, true},
		{"x", true, true},
		{"", false, true},
		{"no", false, true},
		{"paper", false, true},
		{"sometimes", false, false},
	}
	for _, tt := range tests {
		got, ok := parseBool(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseBool(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
