package upload

import (
	"context"
	"time"

	"internhub/internal/common"
)

// ExcelFile records the provenance of a bulk-upload spreadsheet.
type ExcelFile struct {
	ID                 common.UUID `json:"id"`
	Filename           string      `json:"filename"`
	OriginalName       string      `json:"original_name"`
	SizeBytes          int64       `json:"size_bytes"`
	InternshipsCreated int         `json:"internships_created"`
	UploadedBy         common.UUID `json:"uploaded_by"`
	UploadedAt         time.Time   `json:"uploaded_at"`
}

type Repository interface {
	Create(ctx context.Context, file ExcelFile) (*ExcelFile, error)
	ListByAdmin(ctx context.Context, adminID common.UUID) ([]ExcelFile, error)
}
