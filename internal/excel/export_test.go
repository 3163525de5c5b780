package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"internhub/internal/domain/user"
)

func TestBuildUsersWorkbook(t *testing.T) {
	registered := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	users := []user.User{
		{
			Name:       "Ada Lovelace",
			Email:      "ada@example.com",
			Phone:      "+4912345",
			IsVerified: true,
			Education: []user.Education{
				{Degree: "BSc", Institution: "TU Berlin", Year: "2025"},
				{Degree: "Bootcamp", Institution: "Recurse", Year: "2026"},
			},
			Skills:           []string{"Go", "SQL"},
			Keywords:         []string{"backend"},
			ApplicationCount: 3,
			CreatedAt:        registered,
		},
		{
			Name:      "Blank Profile",
			Email:     "blank@example.com",
			CreatedAt: registered,
		},
	}

	data, err := BuildUsersWorkbook(users)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows("Users")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][1] != "Email" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	ada := rows[1]
	if ada[0] != "Ada Lovelace" || ada[3] != "Yes" {
		t.Fatalf("unexpected first row: %v", ada)
	}
	if ada[4] != "BSc" || ada[5] != "TU Berlin" || ada[6] != "2025" {
		t.Fatalf("expected first education block flattened, got %v", ada[4:7])
	}
	if ada[7] != "Bootcamp, Recurse (2026)" {
		t.Fatalf("unexpected overflow education: %q", ada[7])
	}
	if ada[8] != "Go, SQL" {
		t.Fatalf("unexpected skills: %q", ada[8])
	}
	if ada[10] != "3" {
		t.Fatalf("unexpected application count: %q", ada[10])
	}
	if ada[11] != "2026-03-14 09:30:00" {
		t.Fatalf("unexpected registered at: %q", ada[11])
	}

	blank := rows[2]
	if blank[0] != "Blank Profile" || blank[3] != "No" {
		t.Fatalf("unexpected second row: %v", blank)
	}
}

func TestBuildUsersWorkbook_Empty(t *testing.T) {
	data, err := BuildUsersWorkbook(nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()
	rows, err := workbook.GetRows("Users")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
