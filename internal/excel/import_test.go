package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"internhub/internal/common"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	workbook := excelize.NewFile()
	defer workbook.Close()
	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseInternships(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Title", "Company", "Location", "Salary", "Requirements"},
		{"Backend Intern", "Acme", "Berlin", "1500", "Go, SQL"},
		{"Data Intern", "Globex", "Remote", "2000", "Python\nPandas"},
	})

	result, err := ParseInternships(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result.Internships) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(result.Internships))
	}
	first := result.Internships[0]
	if first.Title != "Backend Intern" || first.Company != "Acme" || first.Salary != 1500 {
		t.Fatalf("unexpected first posting: %+v", first)
	}
	if len(first.Requirements) != 2 || first.Requirements[0] != "Go" || first.Requirements[1] != "SQL" {
		t.Fatalf("unexpected requirements: %v", first.Requirements)
	}
	second := result.Internships[1]
	if len(second.Requirements) != 2 || second.Requirements[1] != "Pandas" {
		t.Fatalf("unexpected requirements: %v", second.Requirements)
	}
	if !first.IsActive {
		t.Fatal("imported postings should be active")
	}
}

func TestParseInternships_HeaderAliases(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Role", "Employer", "Stipend"},
		{"Design Intern", "Initech", "800"},
	})

	result, err := ParseInternships(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	posting := result.Internships[0]
	if posting.Title != "Design Intern" {
		t.Fatalf("expected role header to map to title, got %q", posting.Title)
	}
	if posting.Company != "Initech" {
		t.Fatalf("expected employer header to map to company, got %q", posting.Company)
	}
	if posting.Salary != 800 {
		t.Fatalf("expected stipend header to map to salary, got %d", posting.Salary)
	}
}

func TestParseInternships_Defaults(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Title", "Company", "Location"},
		{"", "", "Berlin"},
	})

	result, err := ParseInternships(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	posting := result.Internships[0]
	if posting.Title != "Internship" {
		t.Fatalf("expected default title, got %q", posting.Title)
	}
	if posting.Company != "Unknown Company" {
		t.Fatalf("expected default company, got %q", posting.Company)
	}
}

func TestParseInternships_BadSalaryBecomesZero(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Title", "Company", "Salary"},
		{"A", "Acme", "1200"},
		{"B", "Acme", "negotiable"},
		{"C", "Acme", "-50"},
	})

	result, err := ParseInternships(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result.Internships) != 3 {
		t.Fatalf("expected all 3 rows kept, got %d", len(result.Internships))
	}
	salaries := []int{result.Internships[0].Salary, result.Internships[1].Salary, result.Internships[2].Salary}
	if salaries[0] != 1200 || salaries[1] != 0 || salaries[2] != 0 {
		t.Fatalf("unexpected salaries: %v", salaries)
	}
}

func TestParseInternships_SkipsEmptyRows(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Title", "Company"},
		{"A", "Acme"},
		{"", ""},
		{"B", "Globex"},
	})

	result, err := ParseInternships(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result.Internships) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(result.Internships))
	}
	if result.SkippedRows != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.SkippedRows)
	}
}

func TestParseInternships_NoDataRows(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Title", "Company"},
	})

	_, err := ParseInternships(data)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseInternships_NotASpreadsheet(t *testing.T) {
	_, err := ParseInternships([]byte("definitely,not,xlsx"))
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
