package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/internship"
	"internhub/internal/domain/upload"
	"internhub/internal/excel"
)

// TransferService covers the two spreadsheet flows: bulk posting import and
// the user export download.
type TransferService struct {
	internships internship.Repository
	uploads     upload.Repository
	users       *UserService
	logger      *logrus.Logger
}

func NewTransferService(internships internship.Repository, uploads upload.Repository, users *UserService, logger *logrus.Logger) *TransferService {
	return &TransferService{internships: internships, uploads: uploads, users: users, logger: logger}
}

type ImportSummary struct {
	InternshipsCreated int `json:"internshipsCreated"`
	SkippedRows        int `json:"errors,omitempty"`
}

// ImportInternships parses the workbook, inserts every valid row in one
// batch, and records the upload provenance stamped with the created count.
// Re-uploading the same file creates duplicate postings; the import carries
// no dedup key.
func (s *TransferService) ImportInternships(ctx context.Context, data []byte, originalName string, adminID common.UUID) (*ImportSummary, error) {
	parsed, err := excel.ParseInternships(data)
	if err != nil {
		return nil, err
	}
	created, err := s.internships.CreateBatch(ctx, parsed.Internships)
	if err != nil {
		return nil, err
	}
	record := upload.ExcelFile{
		Filename:           fmt.Sprintf("bulk-%d.xlsx", time.Now().UTC().Unix()),
		OriginalName:       originalName,
		SizeBytes:          int64(len(data)),
		InternshipsCreated: len(created),
		UploadedBy:         adminID,
	}
	if _, err := s.uploads.Create(ctx, record); err != nil {
		// The postings are already in; losing the provenance row is worth a
		// log line, not a failed import.
		s.logger.WithError(err).Warn("failed to record bulk upload provenance")
	}
	s.logger.WithFields(logrus.Fields{
		"admin_id": adminID,
		"created":  len(created),
		"skipped":  parsed.SkippedRows,
	}).Info("bulk import completed")
	return &ImportSummary{InternshipsCreated: len(created), SkippedRows: parsed.SkippedRows}, nil
}

// ListUploads returns the bulk-upload history recorded for an admin.
func (s *TransferService) ListUploads(ctx context.Context, adminID common.UUID) ([]upload.ExcelFile, error) {
	files, err := s.uploads.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []upload.ExcelFile{}
	}
	return files, nil
}

type ExportResult struct {
	Data     []byte
	Filename string
}

// ExportUsers builds the download for the requested registration window. The
// end bound covers the whole end day.
func (s *TransferService) ExportUsers(ctx context.Context, startDate, endDate string) (*ExportResult, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	data, err := excel.BuildUsersWorkbook(users)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("count", len(users)).Info("user export generated")
	return &ExportResult{Data: data, Filename: exportFilename(startDate, endDate)}, nil
}

func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, common.NewValidationError("invalid date range", map[string]string{"startDate": "expected YYYY-MM-DD"})
		}
		from = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, common.NewValidationError("invalid date range", map[string]string{"endDate": "expected YYYY-MM-DD"})
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, common.NewValidationError("invalid date range", map[string]string{"endDate": "endDate is before startDate"})
	}
	return from, to, nil
}

func exportFilename(startDate, endDate string) string {
	switch {
	case startDate != "" && endDate != "":
		return fmt.Sprintf("users_%s_to_%s.xlsx", startDate, endDate)
	case startDate != "":
		return fmt.Sprintf("users_from_%s.xlsx", startDate)
	case endDate != "":
		return fmt.Sprintf("users_until_%s.xlsx", endDate)
	default:
		return "users.xlsx"
	}
}
