package postgres

import (
	"context"
	"database/sql"
	"time"

	"internhub/internal/common"
	"internhub/internal/domain/upload"
)

type ExcelFileRepository struct {
	db *sql.DB
}

func NewExcelFileRepository(db *sql.DB) *ExcelFileRepository {
	return &ExcelFileRepository{db: db}
}

func (r *ExcelFileRepository) Create(ctx context.Context, file upload.ExcelFile) (*upload.ExcelFile, error) {
	file.ID = common.NewUUID()
	file.UploadedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO excel_files (id, filename, original_name, size_bytes, internships_created, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		file.ID, file.Filename, file.OriginalName, file.SizeBytes, file.InternshipsCreated, file.UploadedBy, file.UploadedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record upload", err)
	}
	return &file, nil
}

func (r *ExcelFileRepository) ListByAdmin(ctx context.Context, adminID common.UUID) ([]upload.ExcelFile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, filename, original_name, size_bytes, internships_created, uploaded_by, uploaded_at
		FROM excel_files WHERE uploaded_by = $1 ORDER BY uploaded_at DESC`, adminID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list uploads", err)
	}
	defer rows.Close()
	var items []upload.ExcelFile
	for rows.Next() {
		var file upload.ExcelFile
		if err := rows.Scan(&file.ID, &file.Filename, &file.OriginalName, &file.SizeBytes, &file.InternshipsCreated, &file.UploadedBy, &file.UploadedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan upload", err)
		}
		items = append(items, file)
	}
	return items, nil
}
