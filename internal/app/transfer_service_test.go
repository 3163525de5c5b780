package app

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"internhub/internal/common"
	"internhub/internal/domain/user"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
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

func TestTransferServiceImportInternships(t *testing.T) {
	internships := newFakeInternshipRepo()
	uploads := &fakeUploadRepo{}
	users := NewUserService(newFakeUserRepo(), testLogger())
	service := NewTransferService(internships, uploads, users, testLogger())

	data := workbookBytes(t, [][]any{
		{"Title", "Company", "Salary"},
		{"Backend Intern", "Acme", "1500"},
		{"", "", ""},
		{"Data Intern", "Globex", "oops"},
	})
	adminID := common.NewUUID()

	summary, err := service.ImportInternships(context.Background(), data, "postings.xlsx", adminID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if summary.InternshipsCreated != 2 {
		t.Fatalf("expected 2 created, got %d", summary.InternshipsCreated)
	}
	if summary.SkippedRows != 1 {
		t.Fatalf("expected 1 skipped row, got %d", summary.SkippedRows)
	}
	if len(internships.items) != 2 {
		t.Fatalf("expected 2 stored postings, got %d", len(internships.items))
	}

	files, err := uploads.ListByAdmin(context.Background(), adminID)
	if err != nil {
		t.Fatalf("list uploads: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected provenance record, got %d", len(files))
	}
	if files[0].OriginalName != "postings.xlsx" {
		t.Fatalf("unexpected original name: %q", files[0].OriginalName)
	}
	if files[0].InternshipsCreated != 2 {
		t.Fatalf("expected provenance count 2, got %d", files[0].InternshipsCreated)
	}
}

func TestTransferServiceListUploads(t *testing.T) {
	internships := newFakeInternshipRepo()
	uploads := &fakeUploadRepo{}
	users := NewUserService(newFakeUserRepo(), testLogger())
	service := NewTransferService(internships, uploads, users, testLogger())

	adminID := common.NewUUID()
	otherAdminID := common.NewUUID()

	empty, err := service.ListUploads(context.Background(), adminID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty slice before any upload, got %v", empty)
	}

	data := workbookBytes(t, [][]any{
		{"Title", "Company"},
		{"Backend Intern", "Acme"},
	})
	if _, err := service.ImportInternships(context.Background(), data, "postings.xlsx", adminID); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := service.ImportInternships(context.Background(), data, "other.xlsx", otherAdminID); err != nil {
		t.Fatalf("import for other admin: %v", err)
	}

	files, err := service.ListUploads(context.Background(), adminID)
	if err != nil {
		t.Fatalf("list uploads: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected only this admin's upload, got %d", len(files))
	}
	if files[0].OriginalName != "postings.xlsx" {
		t.Fatalf("unexpected original name: %q", files[0].OriginalName)
	}
}

func TestTransferServiceImportInternships_ProvenanceFailureIsNotFatal(t *testing.T) {
	internships := newFakeInternshipRepo()
	uploads := &fakeUploadRepo{createErr: errors.New("audit table gone")}
	users := NewUserService(newFakeUserRepo(), testLogger())
	service := NewTransferService(internships, uploads, users, testLogger())

	data := workbookBytes(t, [][]any{
		{"Title", "Company"},
		{"Backend Intern", "Acme"},
	})

	summary, err := service.ImportInternships(context.Background(), data, "postings.xlsx", common.NewUUID())
	if err != nil {
		t.Fatalf("expected import to succeed despite audit failure, got %v", err)
	}
	if summary.InternshipsCreated != 1 {
		t.Fatalf("expected 1 created, got %d", summary.InternshipsCreated)
	}
}

func TestTransferServiceImportInternships_EmptyFile(t *testing.T) {
	service := NewTransferService(newFakeInternshipRepo(), &fakeUploadRepo{}, NewUserService(newFakeUserRepo(), testLogger()), testLogger())

	data := workbookBytes(t, [][]any{{"Title", "Company"}})
	_, err := service.ImportInternships(context.Background(), data, "empty.xlsx", common.NewUUID())
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransferServiceImportInternships_NotIdempotent(t *testing.T) {
	internships := newFakeInternshipRepo()
	service := NewTransferService(internships, &fakeUploadRepo{}, NewUserService(newFakeUserRepo(), testLogger()), testLogger())

	data := workbookBytes(t, [][]any{
		{"Title", "Company"},
		{"Backend Intern", "Acme"},
	})
	for i := 0; i < 2; i++ {
		if _, err := service.ImportInternships(context.Background(), data, "postings.xlsx", common.NewUUID()); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
	}
	// Re-uploading the same file duplicates its rows.
	if len(internships.items) != 2 {
		t.Fatalf("expected duplicated postings, got %d", len(internships.items))
	}
}

func TestTransferServiceExportUsers(t *testing.T) {
	userRepo := newFakeUserRepo()
	if _, err := userRepo.Create(context.Background(), user.User{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	service := NewTransferService(newFakeInternshipRepo(), &fakeUploadRepo{}, NewUserService(userRepo, testLogger()), testLogger())

	result, err := service.ExportUsers(context.Background(), "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Filename != "users.xlsx" {
		t.Fatalf("unexpected filename: %q", result.Filename)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestTransferServiceExportUsers_Filenames(t *testing.T) {
	service := NewTransferService(newFakeInternshipRepo(), &fakeUploadRepo{}, NewUserService(newFakeUserRepo(), testLogger()), testLogger())

	cases := []struct {
		start, end string
		want       string
	}{
		{"2026-01-01", "2026-02-01", "users_2026-01-01_to_2026-02-01.xlsx"},
		{"2026-01-01", "", "users_from_2026-01-01.xlsx"},
		{"", "2026-02-01", "users_until_2026-02-01.xlsx"},
	}
	for _, tc := range cases {
		result, err := service.ExportUsers(context.Background(), tc.start, tc.end)
		if err != nil {
			t.Fatalf("export %q..%q: %v", tc.start, tc.end, err)
		}
		if result.Filename != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, result.Filename)
		}
	}
}

func TestTransferServiceExportUsers_BadRange(t *testing.T) {
	service := NewTransferService(newFakeInternshipRepo(), &fakeUploadRepo{}, NewUserService(newFakeUserRepo(), testLogger()), testLogger())

	if _, err := service.ExportUsers(context.Background(), "01.02.2026", ""); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	if _, err := service.ExportUsers(context.Background(), "2026-02-01", "2026-01-01"); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
}
