package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internhub/internal/common"
	"internhub/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, internship_id, user_id, status, cover_letter, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.InternshipID, app.UserID, app.Status, app.CoverLetter, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		// The unique constraint over (internship_id, user_id) is the only
		// duplicate guard; there is no pre-check to race against.
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this internship", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, internship_id, user_id, status, cover_letter, applied_at, updated_at FROM applications WHERE id = $1`, id)
	var app application.Application
	if err := row.Scan(&app.ID, &app.InternshipID, &app.UserID, &app.Status, &app.CoverLetter, &app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID common.UUID) ([]application.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.internship_id, a.user_id, a.status, a.cover_letter, a.applied_at, a.updated_at, i.title, i.company
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Summary
	for rows.Next() {
		var item application.Summary
		if err := rows.Scan(&item.ID, &item.InternshipID, &item.UserID, &item.Status, &item.CoverLetter, &item.AppliedAt, &item.UpdatedAt, &item.InternshipTitle, &item.InternshipCompany); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.internship_id, a.user_id, a.status, a.cover_letter, a.applied_at, a.updated_at, i.title, i.company, u.name, u.email
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN users u ON u.id = a.user_id
		ORDER BY a.applied_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Summary
	for rows.Next() {
		var item application.Summary
		if err := rows.Scan(&item.ID, &item.InternshipID, &item.UserID, &item.Status, &item.CoverLetter, &item.AppliedAt, &item.UpdatedAt, &item.InternshipTitle, &item.InternshipCompany, &item.ApplicantName, &item.ApplicantEmail); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}
