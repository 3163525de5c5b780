package excel

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"internhub/internal/common"
	"internhub/internal/domain/internship"
)

// fieldAliases maps each canonical posting field to the header spellings
// accepted for it, in priority order. Matching is case-insensitive; the first
// alias with a non-empty cell wins.
var fieldAliases = map[string][]string{
	"title":        {"title", "position", "role", "job title"},
	"company":      {"company", "organization", "employer", "company name"},
	"location":     {"location", "city", "place"},
	"domain":       {"domain", "field", "category", "industry"},
	"position":     {"position", "title", "role"},
	"salary":       {"salary", "stipend", "pay", "compensation"},
	"type":         {"type", "internship type", "job type", "mode"},
	"duration":     {"duration", "period", "length"},
	"description":  {"description", "details", "about", "summary"},
	"requirements": {"requirements", "skills", "skills required", "qualifications"},
}

const (
	defaultTitle   = "Internship"
	defaultCompany = "Unknown Company"
)

type ImportResult struct {
	Internships []internship.Internship
	SkippedRows int
}

// ParseInternships reads the first sheet of an uploaded workbook into posting
// records. Rows that carry no usable data are counted and skipped; a bad
// salary cell degrades to 0 instead of failing the row. Returns a validation
// error when no row yields a record.
func ParseInternships(data []byte) (*ImportResult, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewError(common.CodeValidation, "file is not a readable spreadsheet", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.NewValidationError("spreadsheet has no sheets", nil)
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, common.NewError(common.CodeValidation, "failed to read spreadsheet rows", err)
	}
	if len(rows) < 2 {
		return nil, common.NewValidationError("no valid data found in spreadsheet", nil)
	}

	headerIndex := indexHeaders(rows[0])
	result := &ImportResult{}
	for _, cells := range rows[1:] {
		record, ok := parseRow(headerIndex, cells)
		if !ok {
			result.SkippedRows++
			continue
		}
		result.Internships = append(result.Internships, record)
	}
	if len(result.Internships) == 0 {
		return nil, common.NewValidationError("no valid data found in spreadsheet", nil)
	}
	return result, nil
}

func indexHeaders(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

func parseRow(headerIndex map[string]int, cells []string) (internship.Internship, bool) {
	empty := true
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			empty = false
			break
		}
	}
	if empty {
		return internship.Internship{}, false
	}

	resolve := func(field, fallback string) string {
		for _, alias := range fieldAliases[field] {
			i, ok := headerIndex[alias]
			if !ok || i >= len(cells) {
				continue
			}
			if value := strings.TrimSpace(cells[i]); value != "" {
				return value
			}
		}
		return fallback
	}

	return internship.Internship{
		Title:        resolve("title", defaultTitle),
		Company:      resolve("company", defaultCompany),
		Location:     resolve("location", ""),
		Domain:       resolve("domain", ""),
		Position:     resolve("position", ""),
		Salary:       parseSalary(resolve("salary", "")),
		Type:         resolve("type", ""),
		Duration:     resolve("duration", ""),
		Description:  resolve("description", ""),
		Requirements: splitRequirements(resolve("requirements", "")),
		IsActive:     true,
	}, true
}

// parseSalary never fails: an unparsable cell becomes 0 so one bad value
// cannot abort the rest of the file.
func parseSalary(value string) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.Atoi(cleaned)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func splitRequirements(value string) []string {
	split := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	items := make([]string, 0, len(split))
	for _, item := range split {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
