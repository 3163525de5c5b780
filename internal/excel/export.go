package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"internhub/internal/common"
	"internhub/internal/domain/user"
)

var exportHeaders = []string{
	"Name", "Email", "Phone", "Verified", "Degree", "Institution", "Graduation Year",
	"Additional Education", "Skills", "Keywords", "Applications", "Registered At",
}

const (
	exportSheet    = "Users"
	maxColumnWidth = 50
)

// BuildUsersWorkbook renders users into a single-sheet workbook. Education
// sub-records are flattened into columns (first block) plus a joined overflow
// column; set-valued fields are joined with commas.
func BuildUsersWorkbook(users []user.User) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	index, err := workbook.NewSheet(exportSheet)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create sheet", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to drop default sheet", err)
	}

	grid := make([][]string, 0, len(users)+1)
	grid = append(grid, exportHeaders)
	for _, account := range users {
		grid = append(grid, userRow(account))
	}

	for i, cells := range grid {
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to address cell", err)
		}
		if err := workbook.SetSheetRow(exportSheet, cellRef, &row); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to write row", err)
		}
	}

	if err := applyColumnWidths(workbook, grid); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}

func userRow(account user.User) []string {
	var degree, institution, year, extra string
	if len(account.Education) > 0 {
		first := account.Education[0]
		degree = first.Degree
		institution = first.Institution
		year = first.Year
	}
	if len(account.Education) > 1 {
		parts := make([]string, 0, len(account.Education)-1)
		for _, block := range account.Education[1:] {
			parts = append(parts, fmt.Sprintf("%s, %s (%s)", block.Degree, block.Institution, block.Year))
		}
		extra = strings.Join(parts, "; ")
	}
	verified := "No"
	if account.IsVerified {
		verified = "Yes"
	}
	return []string{
		account.Name,
		account.Email,
		account.Phone,
		verified,
		degree,
		institution,
		year,
		extra,
		strings.Join(account.Skills, ", "),
		strings.Join(account.Keywords, ", "),
		fmt.Sprintf("%d", account.ApplicationCount),
		account.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// applyColumnWidths sizes each column to its longest cell, capped so one long
// description cannot blow up the sheet.
func applyColumnWidths(workbook *excelize.File, grid [][]string) error {
	if len(grid) == 0 {
		return nil
	}
	for col := range grid[0] {
		width := 0
		for _, row := range grid {
			if col < len(row) && len(row[col]) > width {
				width = len(row[col])
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return common.NewError(common.CodeInternal, "failed to name column", err)
		}
		if err := workbook.SetColWidth(exportSheet, name, name, float64(width+2)); err != nil {
			return common.NewError(common.CodeInternal, "failed to size column", err)
		}
	}
	return nil
}
